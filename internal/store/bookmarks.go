package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Tags is a list of free-form labels, stored as a JSON array in a TEXT column
// so the schema stays identical across SQLite, MySQL and PostgreSQL.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	case nil:
		*t = Tags{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Tags", src)
	}
}

// Bookmark is a saved link owned by a single user.
type Bookmark struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	URL         string    `db:"url" json:"url"`
	Description string    `db:"description" json:"description"`
	Tags        Tags      `db:"tags" json:"tags"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BookmarkFields holds the caller-supplied columns of a new bookmark.
type BookmarkFields struct {
	Title       string
	URL         string
	Description string
	Tags        []string
	Category    string
}

// BookmarkPatch is a partial update. Nil fields are left unchanged.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Tags        *[]string
	Category    *string
}

type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a bookmark owned by ownerID and returns it.
func (s *BookmarkStore) Create(ctx context.Context, ownerID string, fields BookmarkFields) (*Bookmark, error) {
	b := &Bookmark{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       fields.Title,
		URL:         fields.URL,
		Description: fields.Description,
		Tags:        Tags(fields.Tags),
		Category:    fields.Category,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if b.Tags == nil {
		b.Tags = Tags{}
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO bookmarks (id, user_id, title, url, description, tags, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), b.ID, b.UserID, b.Title, b.URL, b.Description, b.Tags, b.Category, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns the bookmark matching id and owned by ownerID. A bookmark owned
// by someone else yields ErrNotFound.
func (s *BookmarkStore) Get(ctx context.Context, id, ownerID string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`
		SELECT * FROM bookmarks WHERE id = ? AND user_id = ?
	`), id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update applies patch to the bookmark matching id and owned by ownerID in a
// single scoped UPDATE, then returns the updated row. The ownership check and
// the write are one statement, so there is no window for another user's
// bookmark to be modified.
func (s *BookmarkStore) Update(ctx context.Context, id, ownerID string, patch BookmarkPatch) (*Bookmark, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *patch.URL)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, Tags(*patch.Tags))
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}

	args = append(args, id, ownerID)
	res, err := s.db.ExecContext(ctx, s.q(fmt.Sprintf(`
		UPDATE bookmarks SET %s WHERE id = ? AND user_id = ?
	`, strings.Join(sets, ", "))), args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id, ownerID)
}

// Delete removes the bookmark matching id and owned by ownerID. Returns
// ErrNotFound when no such bookmark exists for that owner.
func (s *BookmarkStore) Delete(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM bookmarks WHERE id = ? AND user_id = ?
	`), id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of ownerID's bookmarks, newest first.
func (s *BookmarkStore) List(ctx context.Context, ownerID string, opts PageOptions) (*Page[Bookmark], error) {
	var total int64
	err := s.db.GetContext(ctx, &total, s.q(`
		SELECT COUNT(*) FROM bookmarks WHERE user_id = ?
	`), ownerID)
	if err != nil {
		return nil, err
	}

	var rows []Bookmark
	err = s.db.SelectContext(ctx, &rows, s.q(`
		SELECT * FROM bookmarks
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), ownerID, opts.Limit, opts.Skip)
	if err != nil {
		return nil, err
	}
	return newPage(rows, total, opts), nil
}

// likeEscaper neutralizes LIKE wildcards in user-supplied search terms. The
// escape character is '!' rather than backslash so the same literal works on
// MySQL, which treats backslash specially inside strings.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search returns one page of ownerID's bookmarks whose title, description,
// category or tags contain term, case-insensitively, newest first. A blank
// term matches nothing.
func (s *BookmarkStore) Search(ctx context.Context, ownerID, term string, opts PageOptions) (*Page[Bookmark], error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return newPage[Bookmark](nil, 0, opts), nil
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	const match = `user_id = ? AND (
		LOWER(title) LIKE ? ESCAPE '!'
		OR LOWER(description) LIKE ? ESCAPE '!'
		OR LOWER(category) LIKE ? ESCAPE '!'
		OR LOWER(tags) LIKE ? ESCAPE '!'
	)`
	args := []any{ownerID, pattern, pattern, pattern, pattern}

	var total int64
	err := s.db.GetContext(ctx, &total, s.q(`SELECT COUNT(*) FROM bookmarks WHERE `+match), args...)
	if err != nil {
		return nil, err
	}

	var rows []Bookmark
	err = s.db.SelectContext(ctx, &rows, s.q(`
		SELECT * FROM bookmarks WHERE `+match+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), append(args, opts.Limit, opts.Skip)...)
	if err != nil {
		return nil, err
	}
	return newPage(rows, total, opts), nil
}

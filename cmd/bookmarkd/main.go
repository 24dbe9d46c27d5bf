package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmoore/bookmarkd/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "bookmarkd",
		Short:   "A personal bookmark manager API",
		Long:    "Bookmarkd is a REST API for storing, organizing, and searching personal URL bookmarks.",
		Version: fmt.Sprintf("%s (%s@%s)", build.Version, build.Commit, build.Branch),
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

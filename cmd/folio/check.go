package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/blog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and load the post list once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := folio.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		posts, err := store.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading posts: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config ok (%s store)\n", cfg.PostStore)
		fmt.Fprintf(out, "%d posts in %d categories\n", len(posts), len(blog.Categories(posts)))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <posts.json>",
	Short: "Replace the SQLite post list with a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := folio.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		posts, err := (&blog.JSONFileStore{Path: args[0]}).Load(cmd.Context())
		if err != nil {
			return err
		}
		db, err := blog.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Save(cmd.Context(), posts); err != nil {
			return fmt.Errorf("saving posts: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts into %s\n", len(posts), cfg.DatabasePath)
		return nil
	},
}

// openStore mirrors the App's store selection without starting a server.
func openStore(cfg folio.SiteConfig) (blog.PostStore, func(), error) {
	switch {
	case cfg.PostStore == "sqlite":
		db, err := blog.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case cfg.PostsURL != "":
		return &blog.HTTPStore{URL: cfg.PostsURL}, func() {}, nil
	default:
		return &blog.JSONFileStore{Path: cfg.PostsPath}, func() {}, nil
	}
}

func init() {
	rootCmd.AddCommand(checkCmd, importCmd)
}

// Command folio serves a portfolio site with its blog.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A portfolio site with a filterable blog",
	Long: `folio serves a single-page portfolio and a blog whose post list is
loaded once per page visit from a JSON document, an HTTP URL or SQLite.
Configuration comes from a YAML file overlaid with FOLIO_* variables;
a .env file in the working directory is loaded first when present.`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", folio.EnvOr("FOLIO_CONFIG", "folio.yml"), "config file path")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/freshcheck/api-go/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	logSQL  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "freshcheck",
	Short: "FreshCheck - hotel food-safety inspection API",
	Long: `FreshCheck tracks hotel kitchen inspections: admins define forms and
guidelines, inspectors file reports, and admins approve or reject them.

Configuration is read from the environment (and a .env file when present).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load variables from this file instead of .env")
	rootCmd.PersistentFlags().BoolVar(&logSQL, "log-sql", false, "Log every SQL statement")
}

// loadConfig loads configuration, honoring the global flags.
func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if logSQL {
		cfg.DBLogSQL = true
	}
	return cfg, nil
}

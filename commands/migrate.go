package commands

import (
	"log"

	"github.com/freshcheck/api-go/config"
	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		log.Println("Database migrated successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

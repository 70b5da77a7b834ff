package commands

import (
	"errors"
	"log"

	"github.com/freshcheck/api-go/config"
	"github.com/spf13/cobra"
)

var seedPassword string

// seedCmd bootstraps the first admin account
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap admin account if it does not exist",
	Long: `Create the bootstrap admin account from SEED_ADMIN_EMAIL, SEED_ADMIN_NAME
and SEED_ADMIN_PASSWORD. Running it again is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if seedPassword != "" {
			cfg.SeedAdminPassword = seedPassword
		}
		if cfg.SeedAdminPassword == "" {
			return errors.New("SEED_ADMIN_PASSWORD (or --password) is required")
		}

		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}

		created, err := config.SeedAdmin(cmd.Context(), db, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName)
		if err != nil {
			return err
		}
		if created {
			log.Printf("Admin %s created", cfg.SeedAdminEmail)
		} else {
			log.Printf("Admin %s already exists", cfg.SeedAdminEmail)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "Password of the bootstrap admin")
	rootCmd.AddCommand(seedCmd)
}

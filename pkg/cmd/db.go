package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/storage/db"
	"github.com/teczamora/repositorio65/pkg/log"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list all registered database types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")
			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+dbType)
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the relational schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connectDB(cmd)
			if err != nil {
				return err
			}

			if err := client.Migrate(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema migrated")

			return nil
		},
	}
)

// connectDB initializes config and logging, then opens the configured
// database for one-shot tooling commands.
func connectDB(cmd *cobra.Command) (*db.Client, error) {
	if err := configs.InitConfig(configPath); err != nil {
		return nil, err
	}

	log.Init()

	return db.New(cmd.Context(), &configs.GetConfig().DB)
}

func registerDBCommands() {
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)

	rootCmd.AddCommand(dbCmd)
}

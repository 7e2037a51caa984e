package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teczamora/repositorio65/pkg/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewApp(configPath).Run()
	},
}

func registerServeCommand() {
	rootCmd.AddCommand(serveCmd)
}

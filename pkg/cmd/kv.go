package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teczamora/repositorio65/pkg/internal/storage/kv"
)

var (
	kvCmd = &cobra.Command{
		Use:   "kv",
		Short: "Key-value store related commands",
	}

	kvListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list all registered kv backends",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered kv backends:")
			for _, kvType := range kv.GetRegisteredKVTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+kvType)
			}
		},
	}
)

func registerKVCommands() {
	kvCmd.AddCommand(kvListCmd)

	rootCmd.AddCommand(kvCmd)
}

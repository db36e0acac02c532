package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "oasforge",
		Short:   "oasforge - edit OpenAPI documents from the command line",
		Version: "1.0.0",

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)

	root.AddCommand(
		NewCommand(),
		InfoCommand(),
		PathCommand(),
		OpCommand(),
		SchemaCommand(),
		PropCommand(),
		CheckCommand(),
	)

	return root
}

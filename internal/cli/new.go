package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/config"
	"github.com/kolah/oasforge/internal/model"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty API document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				if _, err := os.Stat(cfg.File); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.File)
				}
			}
			if err := saveDocument(cmd, cfg, model.NewDocument()); err != nil {
				return err
			}
			cmd.PrintErrf("Created %s\n", cfg.File)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing document")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/config"
)

func CheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report dangling schema references",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cfg)
			if err != nil {
				return err
			}

			refs := doc.DanglingRefs()
			if len(refs) == 0 {
				cmd.PrintErrln("No dangling references")
				return nil
			}
			for _, ref := range refs {
				cmd.Printf("%s -> %s (missing)\n", ref.Location, ref.Target)
			}
			if cfg.Check.FailOnDangling {
				return fmt.Errorf("%d dangling reference(s)", len(refs))
			}
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/engine"
	"github.com/kolah/oasforge/internal/model"
)

func PropCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prop",
		Short: "Manage object schema properties",
	}
	cmd.AddCommand(propAddCmd(), propRmCmd(), propTypeCmd(), propExposeCmd())
	return cmd
}

func propAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <schema> <name>",
		Short: "Add a string property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.AddProperty(doc, args[0], args[1])
			})
		},
	}
}

func propRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <schema> <name>",
		Short: "Remove a property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.DeleteProperty(doc, args[0], args[1])
			})
		},
	}
}

func propTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type <schema> <name> <string|number|boolean|object|array|reference>",
		Short: "Change a property's type",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := variantFlags(cmd, args[2])
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetPropertyType(doc, args[0], args[1], variant)
			})
		},
	}
	bindVariantFlags(cmd)
	return cmd
}

func propExposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expose <schema> <name> [channels]",
		Short: "Set exposure channels (comma-separated); omit to clear",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := channelsArg(args, 2)
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetPropertyExposure(doc, args[0], args[1], channels)
			})
		},
	}
}

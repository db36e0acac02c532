package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/engine"
	"github.com/kolah/oasforge/internal/model"
)

func SchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage named schemas",
	}
	cmd.AddCommand(schemaAddCmd(), schemaRmCmd(), schemaTypeCmd(), schemaExposeCmd())
	return cmd
}

func schemaAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a schema (an empty object)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.CreateSchema(doc, args[0])
			})
		},
	}
}

func schemaRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a schema; references to it are left dangling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return newUsageError("deleting a schema may leave dangling references; pass --yes to confirm")
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				next, refs, err := eng.DeleteSchema(doc, args[0])
				if err != nil {
					return doc, err
				}
				if refs > 0 {
					cmd.PrintErrf("Warning: %d reference(s) to %q are now dangling\n", refs, args[0])
				}
				return next, nil
			})
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm deletion")
	return cmd
}

func schemaTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type <name> <string|number|boolean|object|array|reference>",
		Short: "Change a schema's type",
		Long: `Change a schema's type.

For arrays, --items selects the item type; an object item type creates a
named "<name>_items" schema and points the array at it. For references,
--target names the schema pointed at.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := variantFlags(cmd, args[1])
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetSchemaType(doc, args[0], variant)
			})
		},
	}
	bindVariantFlags(cmd)
	return cmd
}

func schemaExposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expose <name> [channels]",
		Short: "Set exposure channels (comma-separated); omit to clear",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := channelsArg(args, 1)
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetSchemaExposure(doc, args[0], channels)
			})
		},
	}
}

func bindVariantFlags(cmd *cobra.Command) {
	cmd.Flags().String("items", "string", "Array item type: string, number, boolean, object, reference")
	cmd.Flags().String("target", "", "Referenced schema name")
}

// variantFlags builds the schema variant selected by a type command.
func variantFlags(cmd *cobra.Command, kind string) (model.SchemaVariant, error) {
	target, _ := cmd.Flags().GetString("target")

	switch kind {
	case "string", "number", "boolean":
		return model.Primitive{Kind: model.PrimitiveKind(kind)}, nil
	case "object":
		return model.NewObject(), nil
	case "reference":
		if target == "" {
			return nil, newUsageError("reference type needs --target <schema>")
		}
		return model.Reference{Target: model.RefName(target)}, nil
	case "array":
		items, _ := cmd.Flags().GetString("items")
		switch items {
		case "string", "number", "boolean":
			return model.Array{Items: &model.SchemaNode{Variant: model.Primitive{Kind: model.PrimitiveKind(items)}}}, nil
		case "object":
			return model.Array{Items: &model.SchemaNode{Variant: model.NewObject()}}, nil
		case "reference":
			if target == "" {
				return nil, newUsageError("reference items need --target <schema>")
			}
			return model.Array{Items: &model.SchemaNode{Variant: model.Reference{Target: model.RefName(target)}}}, nil
		default:
			return nil, newUsageError(fmt.Sprintf("unknown item type %q", items))
		}
	default:
		return nil, newUsageError(fmt.Sprintf("unknown type %q", kind))
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/engine"
	"github.com/kolah/oasforge/internal/model"
)

func OpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "op",
		Short: "Manage operations on paths",
	}
	cmd.AddCommand(
		opAddCmd(),
		opRmCmd(),
		opSetCmd(),
		opRequestCmd(),
		opResponseCmd(),
		opTagCmd(),
		opExposeCmd(),
	)
	return cmd
}

func opAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path> <method>",
		Short: "Add a method to a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.AddOperation(doc, args[0], args[1])
			})
		},
	}
}

func opRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path> <method>",
		Short: "Remove a method from a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.DeleteOperation(doc, args[0], args[1])
			})
		},
	}
}

func opSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <path> <method>",
		Short: "Set summary, description or operation id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.UpdateOperationFields(doc, args[0], args[1], engine.FieldPatch{
					Summary:     changedString(cmd, "summary"),
					Description: changedString(cmd, "description"),
					OperationID: changedString(cmd, "operation-id"),
				})
			})
		},
	}
	cmd.Flags().String("summary", "", "Operation summary")
	cmd.Flags().String("description", "", "Operation description")
	cmd.Flags().String("operation-id", "", "Operation id")
	return cmd
}

func opRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request <path> <method>",
		Short: "Point the request body at a schema, or clear it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := schemaRefFlag(cmd)
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetOperationRequestSchema(doc, args[0], args[1], ref)
			})
		},
	}
	cmd.Flags().String("schema", "", "Schema name or $ref")
	cmd.Flags().Bool("clear", false, "Remove the request body")
	return cmd
}

func opResponseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "response <path> <method> <status>",
		Short: "Point a response body at a schema, or clear it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := schemaRefFlag(cmd)
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetOperationResponseSchema(doc, args[0], args[1], args[2], ref)
			})
		},
	}
	cmd.Flags().String("schema", "", "Schema name or $ref")
	cmd.Flags().Bool("clear", false, "Remove the response body, keeping its description")
	return cmd
}

func opTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage operation tags",
	}

	add := &cobra.Command{
		Use:   "add <path> <method> <tag>",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.AddTag(doc, args[0], args[1], args[2])
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <path> <method> <tag>",
		Short: "Remove a tag",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.DeleteTag(doc, args[0], args[1], args[2])
			})
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func opExposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expose <path> <method> [channels]",
		Short: "Set exposure channels (comma-separated); omit to clear",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := channelsArg(args, 2)
			if err != nil {
				return err
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.SetOperationExposure(doc, args[0], args[1], channels)
			})
		},
	}
}

// schemaRefFlag resolves the --schema/--clear pair into a ref string, empty
// meaning "remove".
func schemaRefFlag(cmd *cobra.Command) (string, error) {
	clearBody, _ := cmd.Flags().GetBool("clear")
	schema, _ := cmd.Flags().GetString("schema")
	if clearBody && schema != "" {
		return "", newUsageError("--schema and --clear are mutually exclusive")
	}
	if !clearBody && schema == "" {
		return "", newUsageError("pass --schema <name> or --clear")
	}
	return schema, nil
}

func channelsArg(args []string, index int) (model.ChannelSet, error) {
	if len(args) <= index {
		return nil, nil
	}
	channels, err := model.ParseChannels(args[index])
	if err != nil {
		return nil, newUsageError(err.Error())
	}
	return channels, nil
}

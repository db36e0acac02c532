package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/engine"
	"github.com/kolah/oasforge/internal/model"
)

func PathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Manage paths",
	}
	cmd.AddCommand(pathAddCmd(), pathRenameCmd(), pathRmCmd())
	return cmd
}

func pathAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Add a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.CreatePath(doc, args[0])
			})
		},
	}
}

func pathRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a path, keeping its operations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.RenamePath(doc, args[0], args[1])
			})
		},
	}
}

func pathRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a path and all its operations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return newUsageError("deleting a path removes all its operations; pass --yes to confirm")
			}
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.DeletePath(doc, args[0])
			})
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm deletion")
	return cmd
}

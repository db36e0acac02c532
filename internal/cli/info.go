package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/engine"
	"github.com/kolah/oasforge/internal/model"
)

func InfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Edit the document info block and servers",
	}
	cmd.AddCommand(infoSetCmd(), infoServerCmd())
	return cmd
}

func infoSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set title, version or description",
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.UpdateInfo(doc, engine.InfoPatch{
					Title:       changedString(cmd, "title"),
					Version:     changedString(cmd, "version"),
					Description: changedString(cmd, "description"),
				})
			})
		},
	}
	cmd.Flags().String("title", "", "API title")
	cmd.Flags().String("version", "", "API version")
	cmd.Flags().String("description", "", "API description")
	return cmd
}

func infoServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage server entries",
	}

	add := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a server entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.AddServer(doc, args[0], description)
			})
		},
	}
	add.Flags().String("description", "", "Server description")

	rm := &cobra.Command{
		Use:   "rm <url>",
		Short: "Remove server entries by URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDocument(cmd, func(eng *engine.Engine, doc *model.Document) (*model.Document, error) {
				return eng.DeleteServer(doc, args[0])
			})
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

// changedString returns the flag value only when the flag was set, so unset
// flags leave the corresponding field untouched.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

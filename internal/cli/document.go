package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/codec"
	"github.com/kolah/oasforge/internal/config"
	"github.com/kolah/oasforge/internal/engine"
	"github.com/kolah/oasforge/internal/model"
)

func newEngine(cfg *config.Config) *engine.Engine {
	return engine.New(engine.Options{DedupeTags: cfg.Edit.DedupeTags})
}

func loadDocument(cfg *config.Config) (*model.Document, error) {
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w (run \"oasforge new\" to start a document)", cfg.File, err)
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.File, err)
	}
	return doc, nil
}

func saveDocument(cmd *cobra.Command, cfg *config.Config, doc *model.Document) error {
	data, warnings, err := codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	for _, w := range warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}
	if err := os.WriteFile(cfg.File, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.File, err)
	}
	return nil
}

// editDocument is the load-mutate-save cycle every edit command runs: a
// failed mutation leaves the file untouched.
func editDocument(cmd *cobra.Command, mutate func(*engine.Engine, *model.Document) (*model.Document, error)) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}
	next, err := mutate(newEngine(cfg), doc)
	if err != nil {
		return err
	}
	return saveDocument(cmd, cfg, next)
}

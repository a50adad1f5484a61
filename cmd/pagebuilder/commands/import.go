package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/pagebuilder/internal/cms"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// ImportCmd implements the 'import' command.
type ImportCmd struct {
	File     string `arg:"" help:"NDJSON export file" type:"existingfile"`
	Database string `name:"db" help:"Snapshot database path (defaults to snapshot.path)"`
}

func (i *ImportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	path := i.Database
	if path == "" {
		path = cfg.Snapshot.Path
	}

	f, err := os.Open(i.File)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "open export").
			WithContext("path", i.File).
			Build()
	}
	defer func() { _ = f.Close() }()

	snap, err := cms.OpenSnapshot(path)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryStore, "open snapshot").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = snap.Close() }()

	stats, err := snap.Import(g.context(), f)
	if err != nil {
		return err
	}
	g.Logger.Info("Snapshot imported",
		"path", path,
		"documents", stats.Documents,
		"drafts", stats.Drafts,
		"skipped", stats.Skipped)

	_, err = fmt.Fprintf(g.out(), "imported %d documents (%d drafts, %d skipped, %d fingerprinted) into %s\n",
		stats.Documents, stats.Drafts, stats.Skipped, stats.Fingerprint, path)
	return err
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagebuilder/internal/cms"
	"git.home.luguber.info/inful/pagebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/imageurl"
	"git.home.luguber.info/inful/pagebuilder/internal/metadata"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/page"
	"git.home.luguber.info/inful/pagebuilder/internal/richtext"
	"git.home.luguber.info/inful/pagebuilder/internal/sections"
)

const (
	SourceCMS      = "cms"
	SourceSnapshot = "snapshot"
)

// Global carries per-invocation state shared by every command.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pagebuilder.yaml"`
	Source  string           `help:"Content store to read from" enum:"cms,snapshot" default:"cms"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Query   QueryCmd   `cmd:"" help:"Print the query and cache tags for a page type"`
	Render  RenderCmd  `cmd:"" help:"Assemble a page and print it as JSON"`
	Post    PostCmd    `cmd:"" help:"Assemble a blog post and print it as JSON"`
	Sitemap SitemapCmd `cmd:"" help:"Print the sitemap XML"`
	Import  ImportCmd  `cmd:"" help:"Load a CMS NDJSON export into the snapshot database"`
	Serve   ServeCmd   `cmd:"" help:"Serve assembled pages over HTTP"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration file and switches the default logger
// to its logging settings.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load configuration").
			WithContext("path", c.Config).
			Build()
	}
	logger := cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, nil
}

// openStore returns the content store selected by --source and a function
// releasing it.
func openStore(source string, cfg *config.Config) (page.ContentStore, func() error, error) {
	switch source {
	case SourceSnapshot:
		snap, err := cms.OpenSnapshot(cfg.Snapshot.Path)
		if err != nil {
			return nil, nil, ferrors.WrapError(err, ferrors.CategoryStore, "open snapshot").
				WithContext("path", cfg.Snapshot.Path).
				Build()
		}
		return snap, snap.Close, nil
	case SourceCMS, "":
		client, err := cms.NewClient(cfg.CMS, cms.NewHTTPClient(cfg.CMS.Timeout))
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil
	default:
		return nil, nil, ferrors.ValidationError(fmt.Sprintf("unknown source %q", source)).Build()
	}
}

// newAssembler wires the section env and metadata generator from cfg.
func newAssembler(cfg *config.Config, store page.ContentStore, recorder metrics.Recorder) *page.Assembler {
	images := imageurl.NewBuilder(cfg.Images)
	text := richtext.New()
	return page.NewAssembler(store,
		page.WithEnv(sections.Env{Images: images, RichText: text}),
		page.WithMetadata(&metadata.Generator{
			Site:       metadata.SiteFromConfig(cfg.Site),
			OGEndpoint: cfg.Metadata.OGEndpoint,
			Images:     images,
			Excerpts:   text,
		}),
		page.WithRecorder(recorder),
	)
}

// withAssembler loads config, opens the store and runs fn with an assembler.
func withAssembler(g *Global, root *CLI, fn func(*config.Config, *page.Assembler) error) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(root.Source, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			g.Logger.Warn("Failed to close content store", "error", cerr)
		}
	}()
	return fn(cfg, newAssembler(cfg, store, nil))
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

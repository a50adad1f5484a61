package commands

import (
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	store, closeStore, err := openStore(root.Source, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	reg := prom.NewRegistry()
	reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	assembler := newAssembler(cfg, store, metrics.NewPrometheusRecorder(reg))

	ctx, stop := signal.NotifyContext(g.context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g.Logger.Info("Starting server", "addr", cfg.Server.Addr, "source", root.Source)
	return server.New(cfg, assembler, root.Source, reg, g.Logger).ListenAndServe(ctx)
}

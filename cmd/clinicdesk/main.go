package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/internal/config"
	"github.com/olimjons/clinicdesk/internal/logger"
	"github.com/olimjons/clinicdesk/internal/tui"
	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "path to config file (default ~/.clinicdesk/config.json)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("clinicdesk", version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogFile(), cfg.LogLevel)
	if err != nil {
		return err
	}
	log.Info().Str("version", version).Str("api", cfg.APIBaseURL).Msg("starting")

	c := client.New(cfg.APIBaseURL)
	c.SetLogger(log)

	mgr := session.NewManager(c, session.NewFileStore(cfg.SessionFile()), log)

	app := tui.NewApp(c, mgr, log, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ticketlist/internal/config"
	"ticketlist/internal/controller"
	"ticketlist/internal/domain"
	"ticketlist/internal/eventbus"
	"ticketlist/internal/listing"
	"ticketlist/internal/logger"
	"ticketlist/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line arguments
	var (
		configPath string
		apiURL     string
		surface    string
		token      string
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&apiURL, "api", "", "Listing Service base URL")
	flag.StringVar(&surface, "surface", "", "Screen to open: catalog, bookings or organizer")
	flag.StringVar(&token, "token", "", "Session bearer token")
	flag.Parse()

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Flags override file values
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if surface != "" {
		cfg.UI.Surface = surface
	}
	if token != "" {
		cfg.Session.Token = token
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Set up logging; stdout belongs to the terminal UI
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		} else {
			defer logFile.Close()
			logOut = logFile
		}
	}
	logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "ticketlist",
		Writer:  logOut,
	})

	return runUI(cfg, logger.Named("main"))
}

func runUI(cfg *config.Config, log *logger.Logger) int {
	name := domain.Surface(cfg.UI.Surface)
	spec, err := controller.SpecFor(name, cfg.PageSizeFor(name))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	client, err := listing.NewClient(listing.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout.Std(),
		RetryMax: cfg.API.RetryMax,
		Session:  listing.Session{Token: cfg.Session.Token},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	bus := eventbus.New()
	defer bus.Close()

	ctl, err := controller.New(controller.Options{
		Spec:     spec,
		Fetcher:  client,
		Bus:      bus,
		Location: time.Local,
		Debounce: cfg.UI.Debounce.Std(),
		Weekend:  cfg.Weekend(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer ctl.Close()

	model := ui.NewModel(ctl)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward controller events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, t := range domain.ControllerEventTypes {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				log.Warn().Str("type", string(e.Type())).Msg("event channel full, dropping event")
			}
		})
		defer unsubscribe()
	}
	go func() {
		for e := range eventChan {
			p.Send(ui.EventMsg{Event: e})
		}
	}()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Quit()
		}
	}()

	log.Info().
		Str("surface", string(spec.Name)).
		Str("api", cfg.API.BaseURL).
		Bool("session", cfg.Session.Token != "").
		Msg("starting UI")

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("error running program")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	log.Info().Msg("UI exited normally")
	return 0
}

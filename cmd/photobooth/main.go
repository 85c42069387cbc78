// Package main is the entry point for the photobooth kiosk.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dshills/photobooth/internal/app"
	"github.com/dshills/photobooth/internal/config"
	"github.com/dshills/photobooth/internal/device"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
	"github.com/dshills/photobooth/internal/log"
	"github.com/dshills/photobooth/internal/plugin"
	"github.com/dshills/photobooth/internal/screen"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configDir string
	debug     bool
	logLevel  string
	noLog     bool
	reset     bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, logFile, err := openLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}

	// Plugins: the core set plus whatever Lua files the config names.
	manager := plugin.NewManager(logger, cfg.General.PluginsDisabled)
	manager.RegisterCore()
	if err := manager.LoadLua(pluginPaths(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("plugins: %v", manager.Names())

	// Configure (and reset, when asked) run before the screen takes
	// over the terminal, so plugin output stays readable.
	dispatcher := hook.NewDispatcher(manager.Registry())
	cfgCtx := hook.Context{hook.KeyConfig: cfg}
	if opts.reset {
		if _, err := dispatcher.Call(hook.Reset, hook.Broadcast, cfgCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: reset hook failed: %v\n", err)
			return 1
		}
	}
	if _, err := dispatcher.Call(hook.Configure, hook.Broadcast, cfgCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: configure hook failed: %v\n", err)
		return 1
	}

	scr, err := screen.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open display: %v\n", err)
		return 1
	}
	if err := scr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize display: %v\n", err)
		return 1
	}
	defer scr.Fini()

	watcher, err := config.Watch(cfg.Dir())
	if err != nil {
		logger.Warn("config watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	poster := &poster{}
	var reload <-chan struct{}
	if watcher != nil {
		reload = watcher.Changes()
	}
	application, err := app.New(app.Options{
		Config:   cfg,
		Logger:   logger,
		Screen:   scr,
		Registry: manager.Registry(),
		Camera:   device.NewMockCamera(),
		Printer:  device.NewMockPrinter(cfg.Printer.Name, cfg.JoinPath("prints"), cfg.Printer.MaxPages, poster),
		Lights:   device.NewMockLights(),
		Reload:   reload,
	})
	if err != nil {
		scr.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	poster.attach(application)

	// Signals become quit events; Interrupt unblocks the event poll so
	// the loop sees the quit on its next tick.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Post(input.Event{Type: input.EventQuit})
		scr.Interrupt()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		scr.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openLogger opens the log file, or a discard logger with -nolog.
func openLogger(opts options) (*log.Logger, *os.File, error) {
	if opts.noLog {
		return log.Discard(), nil, nil
	}
	return log.OpenFile(log.DefaultLogPath(), log.ParseLevel(opts.logLevel))
}

// loadConfig reads the configuration directory, writing the defaults on
// first run (or when -reset was given) so the operator has a file to
// edit. Command line flags override what the file says.
func loadConfig(opts options) (*config.Config, error) {
	dir := opts.configDir
	if opts.reset || !config.Exists(dir) {
		if err := config.Save(config.Default(), dir); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if opts.debug {
		cfg.General.Debug = true
	}
	if opts.logLevel != "" {
		cfg.General.LogLevel = opts.logLevel
	}
	return cfg, nil
}

// pluginPaths resolves the configured Lua plugin files against the
// configuration directory.
func pluginPaths(cfg *config.Config) []string {
	paths := make([]string, 0, len(cfg.General.Plugins))
	for _, p := range cfg.General.Plugins {
		if !filepath.IsAbs(p) {
			p = cfg.JoinPath(p)
		}
		paths = append(paths, p)
	}
	return paths
}

// poster forwards device events to the application once it exists.
// Devices are constructed first, so early events are dropped.
type poster struct {
	mu  sync.Mutex
	app *app.Application
}

func (p *poster) attach(a *app.Application) {
	p.mu.Lock()
	p.app = a
	p.mu.Unlock()
}

func (p *poster) Post(ev input.Event) {
	p.mu.Lock()
	target := p.app
	p.mu.Unlock()
	if target != nil {
		target.Post(ev)
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	defaultDir := defaultConfigDir()
	flag.StringVar(&opts.configDir, "config", defaultDir, "Configuration directory")
	flag.StringVar(&opts.configDir, "c", defaultDir, "Configuration directory (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug mode (disables the failsafe state)")
	flag.BoolVar(&opts.debug, "d", false, "Enable debug mode (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.noLog, "nolog", false, "Disable logging")
	flag.BoolVar(&opts.reset, "reset", false, "Restore the default configuration and run the reset hooks")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Photobooth - interactive photo kiosk\n\n")
		fmt.Fprintf(os.Stderr, "Usage: photobooth [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  photobooth                  Run with the default configuration\n")
		fmt.Fprintf(os.Stderr, "  photobooth -c ./booth       Use ./booth as the configuration directory\n")
		fmt.Fprintf(os.Stderr, "  photobooth -d               Run in debug mode\n")
		fmt.Fprintf(os.Stderr, "  photobooth -reset           Restore the default configuration\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Photobooth %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
			// Valid
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	return opts
}

// defaultConfigDir is ~/.config/photobooth, falling back to the current
// directory when the home directory cannot be determined.
func defaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "photobooth"
	}
	return filepath.Join(base, "photobooth")
}

// Package main provides the CLI entry point for scenemix.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/scenemix/pkg/adapters/ggrenderer"
	"github.com/user/scenemix/pkg/adapters/jsonscenes"
	"github.com/user/scenemix/pkg/adapters/logger"
	"github.com/user/scenemix/pkg/adapters/mp4source"
	"github.com/user/scenemix/pkg/adapters/nullsink"
	"github.com/user/scenemix/pkg/adapters/osfilesystem"
	"github.com/user/scenemix/pkg/adapters/pngsink"
	"github.com/user/scenemix/pkg/adapters/screengrab"
	"github.com/user/scenemix/pkg/compositor"
	"github.com/user/scenemix/pkg/config"
	"github.com/user/scenemix/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run the live compositor."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// RunCmd defines the run subcommand.
type RunCmd struct {
	Config string `short:"c" help:"YAML configuration file path."`

	// Overrides
	Scenes string   `help:"Scene persistence file path (default: ./scenes.json)."`
	Scene  int      `short:"s" default:"0" help:"Scene index to activate at startup."`
	FPS    *float64 `help:"Render loop frame rate (default: 30)."`

	// Screen capture
	ChromePath string `help:"Path to Chrome executable (falls back to CHROME_PATH env, then system default)."`
	NoHeadless bool   `help:"Run the capture browser in non-headless mode."`

	// Debug options
	SinkDir   string `help:"Directory for composited frame dumps (disabled when empty)."`
	SinkEvery *int   `help:"Dump every Nth frame (default: 30)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("scenemix"),
		kong.Description("Composite live scenes from screen, camera, and video sources."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the run command.
func (cmd *RunCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	reader := mp4source.New()
	store := jsonscenes.New(fs, cfg.ScenesPath)

	var sink ports.FrameSink
	if cfg.SinkDir != "" {
		if err := fs.MkdirAll(cfg.SinkDir); err != nil {
			return fmt.Errorf("create sink directory: %w", err)
		}
		sink = pngsink.New(cfg.SinkDir, cfg.SinkEvery, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	comp := compositor.New(renderer, reader, store, sink, log, cfg.ToCompositorOptions())

	// Register the sources declared in configuration.
	for _, sc := range cfg.Sources {
		switch sc.Type {
		case "screen":
			opts := screengrab.DefaultOptions(sc.URL)
			opts.Width = cfg.CanvasWidth
			opts.Height = cfg.CanvasHeight
			opts.Quality = cfg.Quality
			opts.ChromePath = cfg.ChromePath
			opts.Headless = cfg.Headless
			comp.AddSource(ctx, sc.Label, compositor.ScreenVariant{Grabber: screengrab.New(opts)})
		case "video":
			comp.AddSource(ctx, sc.Label, sc.FileVariant())
		case "camera":
			// Camera acquisition has no built-in adapter; attach a
			// grabber through the library API instead.
			log.Warn(l10n.F("Camera source %s skipped: no grabber configured", sc.Label))
		default:
			log.Warn(l10n.F("Unknown source type %s skipped", sc.Type))
		}
	}

	comp.MountNewSurface()

	if cmd.Scene != 0 {
		if err := comp.SetActiveSceneIndex(cmd.Scene); err != nil {
			return err
		}
	}

	comp.Run(ctx)
	return nil
}

// buildConfig loads the configuration file and applies CLI overrides.
func (cmd *RunCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Scenes != "" {
		cfg.ScenesPath = cmd.Scenes
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.ChromePath != "" {
		cfg.ChromePath = cmd.ChromePath
	}
	if cmd.NoHeadless {
		cfg.Headless = false
	}
	if cmd.SinkDir != "" {
		cfg.SinkDir = cmd.SinkDir
	}
	if cmd.SinkEvery != nil {
		cfg.SinkEvery = *cmd.SinkEvery
	}

	return cfg, nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("scenemix version %s", version))
	return nil
}

// Command dragonsaside runs the Dragons Aside tile-placement puzzle.
//
// It supports these commands:
//  1. "play" (default) – an interactive terminal game on stdin/stdout
//  2. "mcp" – an MCP stdio server so an agent can play through tools
//  3. "pile" – prints the deal (equipment and draw order) for a seed
//  4. "config" – validates the configuration and prints the effective settings
//  5. "version" – prints the version
//
// Global flags select the config file, fix the seed and adjust logging.
// Logs always go to stderr so stdout stays free for the game and MCP traffic.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/dragons-aside/game/config"
	"github.com/wricardo/dragons-aside/game/engine"
	"github.com/wricardo/dragons-aside/game/service"
	"github.com/wricardo/dragons-aside/game/session"
	"github.com/wricardo/dragons-aside/game/view"
	"github.com/wricardo/dragons-aside/logging"
	"github.com/wricardo/dragons-aside/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Dragons Aside"
)

// app holds what the Before hook builds for the commands
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	sessions *session.Manager
	svc      service.GameService
}

func main() {
	// Load .env file if it exists
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the command tree reading from in and writing to out and errOut
func newCommand(in io.Reader, out, errOut io.Writer) *cli.Command {
	a := &app{}

	return &cli.Command{
		Name:      "dragonsaside",
		Usage:     "build a road across a dragon-infested board",
		Version:   Version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file (default: $CONFIG_DIR/" + config.DefaultFileName + ")",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "deal games from this seed (0 picks a random seed)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "shorthand for --log-level debug",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, a.init(cmd, errOut)
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "overlays",
						Value: true,
						Usage: "mark reachable cells and valid moves",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.play(ctx, in, out, view.Options{Overlays: cmd.Bool("overlays")})
				},
			},
			{
				Name:  "mcp",
				Usage: "serve the game as MCP tools over stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.serveMCP(ctx)
				},
			},
			{
				Name:  "pile",
				Usage: "print the deal for the configured seed",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.printDeal(out)
				},
			},
			{
				Name:  "config",
				Usage: "validate the configuration and print the effective settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					data, err := yaml.Marshal(a.cfg)
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(out, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.play(ctx, in, out, view.Options{Overlays: true})
		},
	}
}

// init loads configuration, applies flag overrides and builds the services
func (a *app) init(cmd *cli.Command, errOut io.Writer) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, errOut)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.sessions = session.NewManager(logger, cfg.Sessions.EventLimit)
	a.svc = service.NewGameService(a.sessions, logger)

	logger.WithFields(logrus.Fields{"version": Version, "seed": cfg.Seed}).Debug("initialized")
	return nil
}

// serveMCP runs the MCP stdio server with idle session cleanup
func (a *app) serveMCP(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.sessions.RunCleanup(ctx, a.cfg.Sessions.CleanupInterval, a.cfg.Sessions.MaxIdle)

	srv := mcp.NewServer(a.cfg.MCP.Name, a.svc, a.log)
	if a.cfg.MCP.DefaultSession {
		info, err := a.svc.CreateSession(ctx, a.cfg.Seed)
		if err != nil {
			return fmt.Errorf("failed to create default session: %w", err)
		}
		srv.SetDefaultSession(info.ID)
	}

	a.log.WithField("default_session", srv.DefaultSession()).Info("serving MCP over stdio")
	return srv.ServeStdio()
}

// printDeal shows where equipment lands and the draw order, top of the pile first
func (a *app) printDeal(out io.Writer) error {
	seed := a.cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return err
		}
	}

	e := engine.NewEngineWithSeed(seed)
	fmt.Fprintf(out, "Seed %d\n", seed)

	var equipment []string
	for y := 0; y < engine.Height; y++ {
		for x := 0; x < engine.Width; x++ {
			if t, _ := e.Board().Tile(x, y); t.Type == engine.Equipment {
				equipment = append(equipment, fmt.Sprintf("(%d,%d)", x, y))
			}
		}
	}
	fmt.Fprintf(out, "Equipment: %s\n", strings.Join(equipment, " "))

	pile := e.Board().Pile()
	fmt.Fprintf(out, "Pile (%d tiles, %d roads, %d dragons), top first:\n",
		pile.Len(), pile.Count(engine.Road), pile.Count(engine.Dragon))
	for i := 1; !pile.IsEmpty(); i++ {
		tile, err := pile.Draw()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%2d. %s\n", i, tile)
	}
	return nil
}

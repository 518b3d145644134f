// Command lazmy shows the lazmy.art "coming soon" page in a window and can
// serve its health check and sound assets over HTTP alongside it.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jay-Lokhande/lazmy/internal/assets"
	"github.com/Jay-Lokhande/lazmy/internal/audio"
	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/game"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
	"github.com/Jay-Lokhande/lazmy/internal/palette"
	"github.com/Jay-Lokhande/lazmy/internal/server"
)

const defaultConfigPath = "lazmy.yaml"

type options struct {
	configPath string
	verbose    bool
	serve      bool
	seed       uint64
}

// app carries what PersistentPreRunE loads to the commands.
type app struct {
	opts options
	cfg  *config.Config
	log  *zap.Logger
}

func newRootCmd() *cobra.Command { return (&app{}).command() }

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "lazmy",
		Short:         "The lazmy.art coming soon page",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPage(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, "config", "c", defaultConfigPath, "config file")
	pf.BoolVarP(&a.opts.verbose, "verbose", "v", false, "log at debug level")
	root.Flags().BoolVar(&a.opts.serve, "serve", false, "also run the HTTP server")
	root.Flags().Uint64Var(&a.opts.seed, "seed", 0, "particle field seed (0 picks one)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Only run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServer(cmd.Context())
		},
	})
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Particles.Seed = a.opts.seed
	}
	log, err := logging.New(cfg.Logging, a.opts.verbose)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) runServer(ctx context.Context) error {
	srv := server.New(a.cfg.Server, a.log.Named("server"))
	a.log.Info("serving", zap.String("addr", a.cfg.Server.Addr), zap.String("assets", a.cfg.Server.AssetsDir))
	return srv.Run(ctx)
}

// page ends the window once ctx is done, so a signal or a failed server
// closes it too.
type page struct {
	*game.Game
	ctx context.Context
}

func (p page) Update() error {
	if p.ctx.Err() != nil {
		return ebiten.Termination
	}
	return p.Game.Update()
}

func (a *app) runPage(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	seed := cfg.Particles.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug("particle seed", zap.Uint64("seed", seed))

	engine := palette.NewEngine(
		palette.WithPalette(cfg.Palette.Colors),
		palette.WithPeriod(cfg.Palette.Period),
		palette.WithLogger(log.Named("palette")),
	)
	var player *audio.Player
	if cfg.Audio.Enabled {
		player = audio.NewPlayer(
			audio.WithLogger(log.Named("audio")),
			audio.WithVolumes(cfg.Audio.AmbientVolume, cfg.Audio.InteractionVolume),
		)
	}

	g, err := game.New(game.Options{
		Config: cfg,
		Logger: log.Named("game"),
		Engine: engine,
		Player: player,
		Rand:   rand.New(rand.NewPCG(seed, seed)),
	})
	if err != nil {
		engine.Close()
		if player != nil {
			player.Close()
		}
		return err
	}
	defer g.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	if player != nil {
		if err := a.startSounds(ctx, eg, player); err != nil {
			log.Warn("sound disabled", zap.Error(err))
		}
	}
	if a.opts.serve {
		srv := server.New(cfg.Server, log.Named("server"))
		log.Info("serving", zap.String("addr", cfg.Server.Addr))
		eg.Go(func() error { return srv.Run(ctx) })
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)

	runErr := ebiten.RunGame(page{Game: g, ctx: ctx})
	cancel()
	waitErr := eg.Wait()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("window: %w", runErr)
	}
	return waitErr
}

// startSounds loads the sound assets in the background. A local asset
// directory is watched so sounds dropped in later are picked up.
func (a *app) startSounds(ctx context.Context, eg *errgroup.Group, player *audio.Player) error {
	ac := a.cfg.Audio
	src, err := soundSource(ac, a.log)
	if err != nil {
		return err
	}

	eg.Go(func() error {
		player.Prepare(ctx, src, ac.Ambient, ac.Interaction)
		return nil
	})

	dir, ok := src.(assets.DirSource)
	if !ok || !ac.Watch {
		return nil
	}
	eg.Go(func() error {
		onChange := func(found map[string]bool) {
			reloadSounds(ctx, player, dir, ac.Ambient, ac.Interaction, found, a.log)
		}
		err := assets.Watch(ctx, dir.Dir, []string{ac.Ambient, ac.Interaction}, onChange, a.log.Named("assets"))
		if err != nil {
			a.log.Warn("not watching sound assets", zap.Error(err))
		}
		return nil
	})
	return nil
}

func soundSource(ac config.AudioConfig, log *zap.Logger) (assets.Source, error) {
	if ac.AssetsURL != "" {
		return assets.NewHTTPSource(ac.AssetsURL, nil, log.Named("assets"))
	}
	return assets.DirSource{Dir: ac.AssetsDir}, nil
}

// reloadSounds loads sounds that showed up since the last probe. Loaded
// sounds are kept even if their file goes away.
func reloadSounds(ctx context.Context, player *audio.Player, src assets.Source, ambient, interaction string, found map[string]bool, log *zap.Logger) {
	if found[ambient] && !player.HasAmbient() {
		if err := player.LoadAmbient(ctx, src, ambient); err != nil {
			log.Warn("ambient sound unavailable", zap.String("asset", ambient), zap.Error(err))
		}
	}
	if found[interaction] && !player.HasInteraction() {
		if err := player.LoadInteraction(ctx, src, interaction); err != nil {
			log.Warn("interaction sound unavailable", zap.String("asset", interaction), zap.Error(err))
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lazmy:", err)
		stop()
		os.Exit(1)
	}
}

package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"trivia-client/internal/app"
	"trivia-client/internal/config"
	"trivia-client/internal/domain"
	"trivia-client/internal/game"
	filestore "trivia-client/internal/infra/file"
	redisstore "trivia-client/internal/infra/redis"
	"trivia-client/internal/transport/ws"
	"trivia-client/internal/ui/console"
)

// NewPlayCmd builds the CLI subcommand that joins and plays a session.
func NewPlayCmd(configPath, serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Connect to the game server and play",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, *serverURL)
		},
	}
}

// profileStore is the full store surface the CLI needs; all infra
// implementations provide it.
type profileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	Delete(ctx context.Context) error
}

func runPlay(ctx context.Context, configPath, serverFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	finalURL := serverFlag
	if finalURL == "" {
		finalURL = cfg.Server.URL
	}
	if finalURL == "" {
		finalURL = "ws://localhost:8080/ws"
	}

	store, err := profileStoreFromConfig(cfg)
	if err != nil {
		return err
	}
	profile, err := app.EnsureProfile(ctx, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunner(app.Config{
		Dialer: func(ctx context.Context) (app.Session, error) {
			return ws.Dial(ctx, finalURL, profile.UserID)
		},
		Profiles:   store,
		Profile:    profile,
		Renderer:   console.New(os.Stdout),
		Input:      os.Stdin,
		TickPeriod: config.TTLDuration(cfg.UI.Tick, game.DefaultTickPeriod),
	})

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	return config.Load(path)
}

// profileStoreFromConfig picks Redis when configured, otherwise a YAML file
// next to the user's home directory.
func profileStoreFromConfig(cfg config.Config) (profileStore, error) {
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		agentKey := cfg.Agent.Key
		if agentKey == "" {
			agentKey = "default"
		}
		return redisstore.NewProfileStore(client, agentKey, config.TTLDuration(cfg.Redis.TTL, 0)), nil
	}

	path := cfg.Profile.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".trivia-client", "profile.yaml")
	}
	return filestore.NewStore(path), nil
}

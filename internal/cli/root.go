package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	configPath string
	verbose    bool
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envServer := os.Getenv("SERVER_URL")
	if envServer == "" {
		envServer = "ws://localhost:8080/ws"
	}
	envConfig := os.Getenv("CONFIG_PATH")

	cmd := &cobra.Command{
		Use:   "trivia-client",
		Short: "Terminal participant client for live multiplayer trivia",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			// Keep the play surface quiet unless asked; warnings still land.
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", envServer, "websocket URL of the game server")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(NewPlayCmd(&configPath, &serverURL))
	cmd.AddCommand(NewProfileCmd(&configPath))
	return cmd
}

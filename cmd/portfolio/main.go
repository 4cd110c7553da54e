package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/profile"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site with a scripted assistant",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newAskCmd())
	root.AddCommand(newChatCmd())
	root.AddCommand(newProfileCmd())
	return root
}

// loadConfig reads --config and sets up logging. CLI commands log to stderr
// so stdout stays clean for their output.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.InitWithWriter(cfg.Logger, cmd.ErrOrStderr())
	return cfg, nil
}

func loadResponder(cfg *config.Config) (*chat.Responder, error) {
	p, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return nil, err
	}
	return chat.New(p), nil
}

func pacingFrom(c config.ChatConfig) chat.Pacing {
	return chat.Pacing{
		Base:    time.Duration(c.DelayBaseMS) * time.Millisecond,
		PerRune: time.Duration(c.DelayPerRuneMS) * time.Millisecond,
		Min:     time.Duration(c.DelayMinMS) * time.Millisecond,
		Max:     time.Duration(c.DelayMaxMS) * time.Millisecond,
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/profile"
	"github.com/Zachkp/portfolio/internal/tui"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer one message and exit",
		Long: `Answer one message with the portfolio assistant and exit.

Examples:
  portfolio ask "What are your skills?"
  portfolio ask --json "Tell me about the Smart Helmet project"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			responder, err := loadResponder(cfg)
			if err != nil {
				return err
			}

			res := responder.Respond(strings.Join(args, " "))

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Response string   `json:"response"`
					Rule     string   `json:"rule"`
					Project  string   `json:"project,omitempty"`
					Sources  []string `json:"sources,omitempty"`
					DelayMS  int64    `json:"delay_ms"`
				}{res.Text, string(res.Rule), res.Project, res.Sources, pacingFrom(cfg.Chat).Delay(res.Text).Milliseconds()})
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			fmt.Fprintf(cmd.ErrOrStderr(), "[rule: %s]\n", res.Rule)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the full result as JSON")
	return cmd
}

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			responder, err := loadResponder(cfg)
			if err != nil {
				return err
			}
			style, _ := cmd.Flags().GetString("style")
			return tui.Run(responder, tui.Options{Pacing: pacingFrom(cfg.Chat), Style: style})
		},
	}
	cmd.Flags().String("style", "auto", "markdown style: auto, dark, light or notty")
	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect the profile the site answers from",
	}

	validate := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a profile file, or the configured profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profileFromArgs(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile OK: %s (%d projects, %d experience entries)\n",
				p.Name, len(p.Projects), len(p.Experience))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the loaded profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profileFromArgs(cmd, args)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(p)
		},
	}
	show.Flags().Bool("json", false, "print JSON instead of YAML")

	cmd.AddCommand(validate, show)
	return cmd
}

func profileFromArgs(cmd *cobra.Command, args []string) (*profile.Profile, error) {
	if len(args) == 1 {
		return profile.Load(args[0])
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return profile.Load(cfg.Profile.Path)
}

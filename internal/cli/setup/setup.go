// Package setup holds the commands that prepare a salesboard install:
// writing the config file and issuing API tokens
package setup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/salesboard/internal/api"
	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/config"
)

const masked = "********"

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults and SALESBOARD_* environment
overrides are applied. Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	cli.AddOutputFlags(show)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	cli.AddOutputFlags(initCmd)

	cmd.AddCommand(show, initCmd)
	return cmd
}

func configPath(cmd *cobra.Command) (string, error) {
	if p := cli.ConfigPathFromContext(cmd.Context()); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cfg := *cli.ConfigFromContext(cmd.Context())
	if cfg.Server.JWTSecret != "" {
		cfg.Server.JWTSecret = masked
	}
	if cfg.Remote.Token != "" {
		cfg.Remote.Token = masked
	}

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return formatter.Fail(err, "")
	}
	return formatter.Success(cfg, nil, func(w io.Writer) {
		fmt.Fprint(w, string(out))
	})
}

func runInit(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

	path, err := configPath(cmd)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return formatter.Fail(fmt.Errorf("%w: %s already exists", cli.ErrUsage, path), "Pass --force to overwrite it")
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return formatter.Fail(err, "")
	}

	if err := config.Default().Save(path); err != nil {
		return formatter.Fail(err, "")
	}
	return formatter.Success(map[string]string{"path": path}, []string{path}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Wrote %s\n", path)
	})
}

// TokenCmd returns the token command
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an API token signed with server.jwt_secret",
		Long: `Issue a bearer token for the HTTP API, signed with server.jwt_secret.
Put it in remote.token on the machine that talks to the server.

Examples:
  salesboard token u-blake --ttl 720h
  SALESBOARD_REMOTE_TOKEN=$(salesboard token u-casey --admin --quiet) salesboard
`,
		Args: cobra.ExactArgs(1),
		RunE: runToken,
	}
	cmd.Flags().Bool("admin", false, "Mark the token holder as super admin")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	admin, _ := cmd.Flags().GetBool("admin")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	cfg := cli.ConfigFromContext(cmd.Context())
	token, err := api.IssueToken([]byte(cfg.Server.JWTSecret), args[0], admin, ttl)
	if err != nil {
		return formatter.Fail(err, "Set server.jwt_secret or SALESBOARD_SERVER_JWT_SECRET")
	}

	return formatter.Success(map[string]string{"token": token}, []string{token}, func(w io.Writer) {
		fmt.Fprintln(w, token)
	})
}

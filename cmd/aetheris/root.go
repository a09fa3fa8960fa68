package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/api"
	"github.com/aetheris-dev/aetheris/config"
	aetherisjson "github.com/aetheris-dev/aetheris/json"
	"github.com/aetheris-dev/aetheris/logger"
)

const rootLongDesc string = `Aetheris is a terminal client for the Aetheris tool server.

It streams AI chat replies, runs the JSON tools, generates QR codes and
barcodes, and keeps the theme preferences shared with the web front end.`

// app holds the state shared by every subcommand. It is populated by the
// root command's PersistentPreRunE.
type app struct {
	getenv func(string) string

	configPath string
	baseURL    string
	sessionID  string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}

	cmd := &cobra.Command{
		Use:           "aetheris",
		Short:         "Terminal client for the Aetheris tool server",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default ~/.aetheris/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL, including the /api prefix")
	cmd.PersistentFlags().StringVarP(&a.sessionID, "session", "s", "", "Chat session ID")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newHistoryCmd(a),
		newToolsCmd(a),
		newJSONCmd(a),
		newCodeCmd(a),
		newHealthCmd(a),
		newNavCmd(a),
		newThemeCmd(a),
	)

	return cmd
}

// setup loads the config and builds the logger and API client. Flags win
// over the environment, which wins over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(a.getenv)
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg
	a.logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Debug)
	a.client = a.newClient(a.logger)
	a.logger.Debug("config loaded",
		zap.String("path", cfg.Path()),
		zap.String("base_url", cfg.ResolvedBaseURL()))
	return nil
}

func (a *app) newClient(l *zap.Logger) *api.Client {
	return api.New(
		api.WithBaseURL(a.cfg.ResolvedBaseURL()),
		api.WithTimeout(a.cfg.Timeout()),
		api.WithLogger(l),
	)
}

// session returns the chat session ID: the flag, then the config file, then
// a fresh UUID that is saved for later runs.
func (a *app) session() (string, error) {
	if a.sessionID != "" {
		return a.sessionID, nil
	}
	if a.cfg.SessionID != "" {
		return a.cfg.SessionID, nil
	}
	id := uuid.NewString()
	a.cfg.SessionID = id
	if err := a.cfg.Save(); err != nil {
		return "", fmt.Errorf("save session id: %w", err)
	}
	a.logger.Debug("new session", zap.String("session_id", id))
	return id, nil
}

// themeStore opens the persisted theme preferences.
func (a *app) themeStore() (*aetheris.ThemeStore, error) {
	return aetheris.NewThemeStore(aetherisjson.NewPreferenceFile(a.cfg.ThemePath()))
}

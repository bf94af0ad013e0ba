package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mephi-learn/telegram-bot-client/internal/log"
	"github.com/mephi-learn/telegram-bot-client/internal/pkg/config"
	"github.com/mephi-learn/telegram-bot-client/internal/pkg/term"
	"github.com/mephi-learn/telegram-bot-client/pkg/ports"
	"github.com/mephi-learn/telegram-bot-client/pkg/telegram"
)

const defaultWidth = 100

// app хранит общее состояние команд.
type app struct {
	configPath string
	asJSON     bool

	out    io.Writer
	errOut io.Writer
	tty    *term.Terminal
	width  int

	cfg    *config.Config
	log    *slog.Logger
	client *telegram.Client
	api    ports.BotAPI
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "botctl",
		Short: "botctl - call Telegram Bot API methods",
		Long: `botctl calls Telegram Bot API methods on behalf of a bot.

The bot token is read from the config file (botctl.yml), the
TELEGRAM_BOT_TOKEN environment variable or a .env file. If none is
set and stdin is a terminal, botctl asks for it.`,
		Example: `  # Check the token
  botctl me

  # Fetch pending updates
  botctl updates --offset 5 --limit 10 --timeout 0

  # Send a message with a one-time keyboard
  botctl send 12345 "Pick one" --keyboard "Yes,No" --one-time

  # Upload a photo, or resend one by file_id
  botctl photo @channel ./cat.jpg --caption "cat"
  botctl photo @channel AgADBAADq6cxG...

  # Negative chat ids go after --
  botctl forward -- -1001234567890 12345 7`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the YAML config (default "+config.DefaultConfigFile+")")
	cmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")

	cmd.AddCommand(
		newMeCmd(a),
		newUpdatesCmd(a),
		newSendCmd(a),
		newForwardCmd(a),
		newLocationCmd(a),
		newActionCmd(a),
		newProfilePhotosCmd(a),
		newFileCmd(a),
		newDownloadCmd(a),
		newWebhookCmd(a),
		newAnswerInlineCmd(a),
	)
	for _, kind := range contentKinds {
		cmd.AddCommand(newSendContentCmd(a, kind))
	}

	return cmd
}

// setup загружает конфигурацию и создает клиент.
func (a *app) setup() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Telegram.Token == "" && a.tty != nil && a.tty.Interactive() {
		token, err := a.tty.Token()
		if err != nil {
			return err
		}
		cfg.Telegram.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	a.log = log.New(a.errOut, cfg.Logging.Level, cfg.Logging.Format)
	a.client = telegram.NewClient(cfg.Telegram.Token,
		telegram.WithAPIEndpoint(cfg.Telegram.APIEndpoint),
		telegram.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		telegram.WithLogger(a.log.With("component", "telegram")),
	)
	a.api = a.client

	a.log.Debug("botctl configured", "api_endpoint", cfg.Telegram.APIEndpoint, "http_timeout", cfg.HTTPTimeout())
	return nil
}

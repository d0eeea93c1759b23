package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spystrach/interimBot/internal/bot"
	"github.com/spystrach/interimBot/internal/config"
	"github.com/spystrach/interimBot/internal/db"
	"github.com/spystrach/interimBot/internal/flow"
	"github.com/spystrach/interimBot/internal/mail"
	"github.com/spystrach/interimBot/internal/repository"
	"github.com/spystrach/interimBot/internal/service"
)

const defaultDBPath = "data.db"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var settingsPath string

	root := &cobra.Command{
		Use:   "interimbot",
		Short: "Telegram bot tracking interim missions and payslip hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), settingsPath)
		},
	}
	root.Flags().StringVar(&settingsPath, "settings", ".env", "path to the settings file")
	return root
}

// newLogger writes text to a terminal, JSON otherwise.
func newLogger() *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	return slog.New(handler)
}

func runBot(ctx context.Context, settingsPath string) error {
	logger := newLogger()

	cfg, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer database.Close()

	repo := repository.NewSQLiteMissionRepo(database)
	engine := flow.NewEngine(repo, logger)
	missions := service.NewMissionService(repo, logger)

	client, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return fmt.Errorf("connecting to telegram: %w", err)
	}
	logger.Info("bot authorized", "account", client.Self.UserName)

	// Relay credentials are re-read from the settings file at send time
	// and held only for the duration of the send.
	smtp := func() (mail.SMTP, error) {
		c, err := config.Load(settingsPath)
		if err != nil {
			return mail.SMTP{}, err
		}
		return mail.SMTP{
			Host:     c.ServerName,
			Port:     c.ServerPort,
			From:     c.MailFrom,
			Password: c.MailPass,
			To:       c.MailTo,
		}, nil
	}

	exportPath := filepath.Join(os.TempDir(), "extrait.xlsx")
	dispatcher := bot.New(client, engine, missions, smtp, exportPath, logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 60
	updates := client.GetUpdatesChan(updateCfg)

	go func() {
		<-ctx.Done()
		client.StopReceivingUpdates()
	}()

	logger.Info("bot running", "store", dbPath)
	dispatcher.Run(ctx, updates)
	return nil
}

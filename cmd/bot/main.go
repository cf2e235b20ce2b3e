package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dvloznov/money-tracker/internal/bot"
	"github.com/dvloznov/money-tracker/internal/commands"
	"github.com/dvloznov/money-tracker/internal/config"
	"github.com/dvloznov/money-tracker/internal/ledger"
	"github.com/dvloznov/money-tracker/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to money-tracker.yaml (optional)")
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration failed")
	}
	if missing := cfg.Validate(); len(missing) > 0 {
		log.Fatal().Str("missing", strings.Join(missing, ", ")).Msg("incomplete configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := commands.BuildLedger(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing ledger failed")
	}

	tax, err := commands.BuildTaxonomy(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading taxonomy failed")
	}

	tr, err := commands.BuildTrainer(cfg, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing trainer failed")
	}
	if err := tr.Refresh(ctx); err != nil {
		// Examples improve quality but are not required to start.
		log.Warn().Err(err).Msg("initial example refresh failed")
	}

	cat := commands.BuildCategorizer(cfg, tax, tr, log)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to Telegram failed")
	}

	var tableURL string
	if sl, ok := store.(*ledger.SheetsLedger); ok {
		tableURL = sl.URL()
	}

	b := bot.New(api, cat, store, tr, tableURL, log)

	go b.RunRetrainLoop(ctx, cfg.Trainer.RetrainCheckInterval())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down...")
		cancel()
	}()

	b.Run(ctx)
}

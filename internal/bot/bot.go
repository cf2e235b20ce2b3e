// Package bot is the Telegram front end: it buffers incoming text messages
// per chat and turns them into ledger rows on /process.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/ledger"
	"github.com/dvloznov/money-tracker/internal/model"
	"github.com/dvloznov/money-tracker/internal/trainer"
)

const updateTimeoutSeconds = 60

// Extractor converts one raw message into a structured record.
type Extractor interface {
	Extract(ctx context.Context, text string) model.TransactionRecord
}

// Bot wires the Telegram update loop to the extractor and the ledger.
type Bot struct {
	api       *tgbotapi.BotAPI
	extractor Extractor
	ledger    ledger.Ledger
	trainer   *trainer.Trainer
	buffer    *Buffer
	tableURL  string
	log       zerolog.Logger
}

func New(api *tgbotapi.BotAPI, extractor Extractor, l ledger.Ledger, tr *trainer.Trainer, tableURL string, log zerolog.Logger) *Bot {
	return &Bot{
		api:       api,
		extractor: extractor,
		ledger:    l,
		trainer:   tr,
		buffer:    NewBuffer(),
		tableURL:  tableURL,
		log:       log.With().Str("component", "bot").Logger(),
	}
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !msg.IsCommand() {
		count := b.buffer.Add(chatID, msg.Text)
		b.reply(chatID, fmt.Sprintf("✅ Got it! %d messages saved.\n\n💡 Run /process to log them.", count))
		return
	}

	switch msg.Command() {
	case "start":
		b.reply(chatID, startText)
	case "help":
		b.reply(chatID, helpText)
	case "process":
		b.handleProcess(ctx, msg)
	case "clear":
		b.handleClear(chatID)
	case "table":
		b.handleTable(chatID)
	case "stats":
		b.handleStats(chatID)
	default:
		b.reply(chatID, "🤔 Unknown command. Try /help.")
	}
}

func (b *Bot) handleProcess(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	messages := b.buffer.Messages(chatID)
	if len(messages) == 0 {
		b.reply(chatID, "📭 Nothing to process. Send something first.")
		return
	}

	b.reply(chatID, fmt.Sprintf("⚙️ Processing %d messages...\nGimme a sec.", len(messages)))

	user := senderName(msg)
	records := make([]model.TransactionRecord, 0, len(messages))
	for _, m := range messages {
		record := b.extractor.Extract(ctx, m.Text)
		record.Date = m.ReceivedAt
		record.User = user
		records = append(records, record)

		b.log.Info().
			Str("message_id", m.ID).
			Str("category", record.Category).
			Str("amount", record.Amount.String()).
			Msg("message extracted")
	}

	if err := b.ledger.AppendBatch(ctx, records); err != nil {
		b.log.Error().Err(err).Int("records", len(records)).Msg("ledger append failed")
		b.reply(chatID, "❌ Couldn't add to the sheet. Try again later.")
		return
	}

	b.buffer.Clear(chatID)
	b.reply(chatID, fmt.Sprintf("✅ Logged %d transactions!\n\n/table – See the sheet", len(records)))
}

func (b *Bot) handleClear(chatID int64) {
	if n := b.buffer.Clear(chatID); n > 0 {
		b.reply(chatID, fmt.Sprintf("🧹 Cleared %d messages.", n))
	} else {
		b.reply(chatID, "📭 Nothing to clear.")
	}
}

func (b *Bot) handleTable(chatID int64) {
	if b.tableURL == "" {
		b.reply(chatID, "❌ Couldn't get the link. Try later.")
		return
	}
	b.reply(chatID, "📊 Your sheet:\n"+b.tableURL)
}

func (b *Bot) handleStats(chatID int64) {
	messages := b.buffer.Messages(chatID)
	if len(messages) == 0 {
		b.reply(chatID, "📭 Nothing saved yet.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Stats:\nSaved: %d messages\n\nLatest:\n", len(messages))

	latest := messages
	if len(latest) > 5 {
		latest = latest[len(latest)-5:]
	}
	for i, m := range latest {
		text := m.Text
		if len(text) > 50 {
			text = text[:50] + "..."
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, text)
	}

	if b.trainer != nil {
		stats := b.trainer.Stats()
		fmt.Fprintf(&sb, "\nTraining examples: %d", stats.ExampleCount)
		if !stats.LastTrainedAt.IsZero() {
			fmt.Fprintf(&sb, " (refreshed %s)", stats.LastTrainedAt.Format("02-01-06"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nRun /process to log them.")
	b.reply(chatID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("sending reply failed")
	}
}

// senderName mirrors the ledger's User column convention.
func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return "Unknown"
	}
	if msg.From.FirstName != "" {
		return msg.From.FirstName
	}
	if msg.From.UserName != "" {
		return msg.From.UserName
	}
	return "Unknown"
}

// RunRetrainLoop refreshes the trainer's example block every interval while
// the weekly predicate allows. Runs until the context is cancelled.
func (b *Bot) RunRetrainLoop(ctx context.Context, interval time.Duration) {
	if b.trainer == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !b.trainer.ShouldRetrain() {
				continue
			}
			if err := b.trainer.Refresh(ctx); err != nil {
				b.log.Error().Err(err).Msg("scheduled retrain failed")
			}
		}
	}
}

const startText = `👋 Hi! I track your spending.

Send me messages like "Coffee 200" or "+5000 freelance" and
I'll stash them till you run /process.

/start – This intro
/process – Parse all messages, send to Google Sheets
/clear – Wipe the message buffer
/table – Get your Sheets link
/stats – See what's saved
/help – Quick guide`

const helpText = `💡 Quick guide

Send any spending or income as plain text.
Run /process once you've sent a few.

/start – Intro
/process – Log stuff
/clear – Clean up messages
/table – Your Sheets link
/stats – What's saved
/help – You're here`

// Package categorize turns free-form spending/income messages into
// structured transaction records. The primary path runs a language model
// extraction; every failure along it degrades to the deterministic fallback,
// so extraction never fails from the caller's point of view.
package categorize

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/money-tracker/internal/currency"
	"github.com/dvloznov/money-tracker/internal/llm"
	"github.com/dvloznov/money-tracker/internal/model"
	"github.com/dvloznov/money-tracker/internal/taxonomy"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 500
	defaultTimeout     = 30 * time.Second

	// compression call: low temperature, tiny budget, one job.
	compressionTemperature = 0.0
	compressionMaxTokens   = 20

	// rawDescriptionLimit bounds the raw-text substitute when the model
	// returned no description at all.
	rawDescriptionLimit = 50
)

// ExampleSource supplies the few-shot example block for the extraction
// prompt. A stale or empty block is acceptable; the prompt falls back to the
// built-in examples.
type ExampleSource interface {
	ExamplesBlock() string
}

// Config carries the tunable parts of the Categorizer. Zero values select
// the defaults above.
type Config struct {
	Temperature float32
	MaxTokens   int32
	Timeout     time.Duration
}

// Categorizer is the transaction extractor. It owns no persistent state
// beyond the shared taxonomy reference it passes to its Normalizer.
type Categorizer struct {
	llm      llm.Client
	tax      *taxonomy.Taxonomy
	norm     *Normalizer
	conv     *currency.Converter
	examples ExampleSource
	log      zerolog.Logger

	temperature float32
	maxTokens   int32
	timeout     time.Duration
}

// New creates a Categorizer. examples may be nil until the trainer has run.
func New(client llm.Client, tax *taxonomy.Taxonomy, conv *currency.Converter, examples ExampleSource, log zerolog.Logger, cfg Config) *Categorizer {
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Categorizer{
		llm:         client,
		tax:         tax,
		norm:        NewNormalizer(tax, log),
		conv:        conv,
		examples:    examples,
		log:         log,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
}

// Extract converts one message into a TransactionRecord. It never fails:
// any model, parsing, or timeout error routes to the deterministic fallback,
// which assigns the default category and does not touch the taxonomy.
func (c *Categorizer) Extract(ctx context.Context, text string) model.TransactionRecord {
	record, err := c.extractWithModel(ctx, text)
	if err != nil {
		c.log.Warn().Err(err).Str("input", text).Msg("model extraction failed, using fallback")
		return Fallback(text, c.conv)
	}
	return record
}

func (c *Categorizer) extractWithModel(ctx context.Context, text string) (model.TransactionRecord, error) {
	examplesBlock := ""
	if c.examples != nil {
		examplesBlock = c.examples.ExamplesBlock()
	}
	prompt := buildExtractionPrompt(c.tax, examplesBlock, text)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.llm.Complete(callCtx, systemPrompt, prompt, c.temperature, c.maxTokens)
	if err != nil {
		return model.TransactionRecord{}, err
	}

	resp, err := parseModelResponse(raw)
	if err != nil {
		return model.TransactionRecord{}, err
	}

	return c.finalize(ctx, resp, text), nil
}

// finalize applies the documented defaulting rules to a partial model
// response and produces a fully populated record. Individual bad fields are
// substituted, never escalated: by this point the extraction as a whole has
// succeeded.
func (c *Categorizer) finalize(ctx context.Context, resp modelResponse, text string) model.TransactionRecord {
	typ := model.Expense
	if resp.Type != nil {
		if parsed, ok := model.ParseType(*resp.Type); ok {
			typ = parsed
		}
	}

	amount := decimal.Zero
	if resp.Amount != nil && !resp.Amount.IsNegative() {
		amount = *resp.Amount
	}

	code := c.conv.Base()
	if resp.Currency != nil {
		code = strings.ToUpper(strings.TrimSpace(*resp.Currency))
	}

	category := ""
	if resp.Category != nil {
		category = *resp.Category
	}
	category = c.norm.Normalize(ctx, category, typ)

	return model.TransactionRecord{
		Type:        typ,
		Amount:      amount,
		Currency:    code,
		AmountBase:  c.conv.ToBase(amount, code),
		Category:    category,
		Description: c.describe(ctx, resp.Description, text),
		RawInput:    text,
	}
}

// describe sanitizes the model's description, escalating to one short
// low-temperature compression call when the sanitized phrase is not
// expressible in English. If that call also fails, a generic placeholder
// stands in.
func (c *Categorizer) describe(ctx context.Context, description *string, text string) string {
	base := truncate(text, rawDescriptionLimit)
	if description != nil {
		base = *description
	}

	sanitized := Sanitize(base)
	if IsEnglish(sanitized) {
		return sanitized
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	compressed, err := c.llm.Complete(callCtx, compressionSystemPrompt, buildCompressionPrompt(sanitized), compressionTemperature, compressionMaxTokens)
	if err != nil {
		c.log.Warn().Err(err).Msg("description compression failed, using placeholder")
		return PlaceholderDescription
	}

	sanitized = Sanitize(compressed)
	if !IsEnglish(sanitized) {
		return PlaceholderDescription
	}
	return sanitized
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

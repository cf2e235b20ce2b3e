package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dvloznov/money-tracker/internal/ledger"
	"github.com/dvloznov/money-tracker/internal/model"
)

// newBulkUploadCommand uploads historical transactions from a text file, one
// raw message per line, running each through the extractor.
func newBulkUploadCommand(configPath *string) *cobra.Command {
	var (
		user    string
		dateStr string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "bulk-upload <file>",
		Short: "Extract and append historical transactions from a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log := newLogger()
			ctx := cmd.Context()

			date := time.Now()
			if dateStr != "" {
				date, err = time.Parse(ledger.DateLayout, dateStr)
				if err != nil {
					return fmt.Errorf("parsing --date %q (want %s): %w", dateStr, ledger.DateLayout, err)
				}
			}

			l, err := BuildLedger(ctx, cfg)
			if err != nil {
				return err
			}
			tax, err := BuildTaxonomy(ctx, cfg)
			if err != nil {
				return err
			}
			tr, err := BuildTrainer(cfg, l, log)
			if err != nil {
				return err
			}
			if err := tr.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("loading examples failed, continuing without them")
			}
			cat := BuildCategorizer(cfg, tax, tr, log)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening input file: %w", err)
			}
			defer f.Close()

			green := color.New(color.FgGreen)
			yellow := color.New(color.FgYellow)

			var records []model.TransactionRecord
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				record := cat.Extract(ctx, line)
				record.Date = date
				record.User = user
				records = append(records, record)

				out := green
				if record.Category == model.DefaultCategory {
					out = yellow
				}
				out.Printf("%-40q  %s %s %s  %s\n",
					line, record.Type, record.Amount.StringFixed(2), record.Currency, record.Category)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("nothing to upload")
				return nil
			}
			if dryRun {
				fmt.Printf("dry run: %d records not written\n", len(records))
				return nil
			}

			if err := l.AppendBatch(ctx, records); err != nil {
				return fmt.Errorf("appending %d records: %w", len(records), err)
			}
			green.Printf("uploaded %d records\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "bulk", "value for the User column")
	cmd.Flags().StringVar(&dateStr, "date", "", "date for all rows in DD-MM-YY format (default today)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract and print without writing to the ledger")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newRetrainCommand forces an example refresh and prints the resulting
// few-shot block, for inspecting what the bot will feed the model.
func newRetrainCommand(configPath *string) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "retrain",
		Short: "Refresh the few-shot examples from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log := newLogger()
			ctx := cmd.Context()

			l, err := BuildLedger(ctx, cfg)
			if err != nil {
				return err
			}
			tr, err := BuildTrainer(cfg, l, log)
			if err != nil {
				return err
			}

			if err := tr.Refresh(ctx); err != nil {
				return fmt.Errorf("refreshing examples: %w", err)
			}

			stats := tr.Stats()
			color.New(color.FgGreen).Printf("refreshed %d examples\n", stats.ExampleCount)

			if show {
				block := tr.ExamplesBlock()
				if block == "" {
					fmt.Println("(no examples selected)")
				} else {
					fmt.Println(block)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the rendered example block")

	return cmd
}

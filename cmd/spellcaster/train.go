package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcwand/spellcaster/internal/classify"
	"github.com/arcwand/spellcaster/internal/config"
)

var (
	trainVariants int
	trainSeed     int64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the spell classifier and persist the model",
	Long: `Train generates jittered synthetic exemplars for every spell in the
book, fits the classifier on them and writes the model to the configured
model path, replacing any existing model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		book, st, err := loadBook()
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		model, err := classify.Train(book.Shapes(), classify.TrainOptions{
			Resample: settings.Gesture.ResamplePoints,
			Variants: trainVariants,
			Seed:     trainSeed,
		})
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}

		if err := classify.SaveModel(settings.Gesture.ModelPath, model); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}

		fmt.Printf("Trained classifier for %d spells, model written to %s\n",
			len(model.Labels), settings.Gesture.ModelPath)
		return nil
	},
}

func init() {
	trainCmd.Flags().IntVar(&trainVariants, "variants", classify.DefaultVariants, "jittered exemplars per spell")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 0, "random seed for jitter (0 uses a time-based seed)")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "spellcaster",
	Short: "IR wand gesture recognition and spell casting daemon",
	Long: `Spellcaster tracks a retroreflective wand tip through an IR camera,
segments its motion into gestures and classifies them into spells.`,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.spellcaster/config.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(spellsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(trainCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

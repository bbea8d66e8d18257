// Package cmd - sightline CLI commands
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sightline",
	Short: "Sightline signal evaluation and feed ranking - CLI",
	Long: `Sightline signal evaluation and feed ranking - CLI

Usage:
    go run ./cmd/sightline [command]

Commands:
    serve       Start the API server
    evaluate    Evaluate a sighting against every signal
    sweep       Run the score-threshold sweep
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(sweepCmd)
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	if err := godotenv.Load(); err != nil {
		if verbose {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}
	return nil
}

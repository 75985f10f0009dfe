package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rosidl-go/msggen/internal/generator"
	"github.com/rosidl-go/msggen/internal/logger"
)

var generatorArgumentsFile string

// generateRun is the generation entry point; tests replace it to observe
// the dispatch without running a full generation.
var generateRun = generator.Run

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go bindings for the interfaces of one package",
	Long: `Generate Go sources for all message and service definitions listed
in a generator-arguments file.

The arguments file names the interface package, the .msg and .srv input
files, interface dependencies of other packages and the output directory.
The command performs exactly one generation run and exits with the run's
status: 0 on success, non-zero when parsing, validation or writing fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		if logFile := viper.GetString("log-file"); logFile != "" {
			if err := logger.SetLogFile(logFile); err != nil {
				return fmt.Errorf("failed to set log file: %w", err)
			}
			defer logger.Close()
		}
		logger.SetVerbose(viper.GetBool("verbose"))
		logger.SetDebug(viper.GetBool("debug"))

		logger.Debugf("Generator arguments file: %s", generatorArgumentsFile)

		// The arguments file path is handed to the generator unchanged; all
		// further failure handling lives there.
		if err := generateRun(generatorArgumentsFile); err != nil {
			logger.Errorf("Generation failed: %v", err)
			return &ExitError{Code: 1, Message: err.Error()}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generatorArgumentsFile, "generator-arguments-file", "",
		"path to the file containing the generator arguments (required)")
	generateCmd.Flags().String("log-file", "", "also append logs to this file")
	_ = viper.BindPFlag("log-file", generateCmd.Flags().Lookup("log-file"))

	_ = generateCmd.MarkFlagRequired("generator-arguments-file")
}

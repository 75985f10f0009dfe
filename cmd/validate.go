package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rosidl-go/msggen/internal/formatting"
	"github.com/rosidl-go/msggen/internal/parser"
	"github.com/rosidl-go/msggen/internal/validation"
)

var validatePackageName string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check interface definition files without generating code",
	Long: `Parse the given .msg and .srv files and report per-file results.

Nothing is written; the command exits non-zero if any file fails to
parse. Complex field types are not resolved against dependencies here,
only the definition grammar is checked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]formatting.FileResult, 0, len(args))
		for _, file := range args {
			results = append(results, validateFile(validatePackageName, file))
		}

		for _, r := range results {
			fmt.Fprintln(cmd.OutOrStdout(), formatting.FormatFileResult(r))
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatting.FormatSummary(results))

		for _, r := range results {
			if r.Err != nil {
				return &ExitError{Code: 1, Message: "validation failed"}
			}
		}
		return nil
	},
}

// validateFile parses a single interface file and summarizes the outcome.
func validateFile(pkgName, file string) formatting.FileResult {
	result := formatting.FileResult{Path: file}
	switch validation.DetectKind(file) {
	case validation.KindMessage:
		spec, err := parser.ParseMessageFile(pkgName, file)
		if err != nil {
			result.Err = err
			return result
		}
		result.Detail = formatting.MessageDetail(len(spec.Fields), len(spec.Constants))
	case validation.KindService:
		spec, err := parser.ParseServiceFile(pkgName, file)
		if err != nil {
			result.Err = err
			return result
		}
		result.Detail = formatting.ServiceDetail(len(spec.Request.Fields), len(spec.Response.Fields))
	default:
		result.Err = fmt.Errorf("unsupported interface file extension")
	}
	return result
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validatePackageName, "package-name", "pkg",
		"package name used to resolve unqualified field types")
	_ = viper.BindPFlag("package-name", validateCmd.Flags().Lookup("package-name"))
}

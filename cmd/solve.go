package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/Beastly713/sssolve/pkg/compression"
	"github.com/Beastly713/sssolve/pkg/field"
	"github.com/Beastly713/sssolve/pkg/pipeline"
	"github.com/Beastly713/sssolve/pkg/report"
	"github.com/spf13/cobra"
)

var (
	solvePrime        string
	solveConstantTime bool
	workers           int
	outputFormat      string
	outFile           string
	strict            bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [file...]",
	Short: "Reconstruct the secret of every test case",
	Long: `Solve reads one or more test case files (JSON, optionally gzipped) and
prints the reconstructed secret of each. Use "-" to read records from stdin;
several records may be concatenated in one stream.

A case that fails is reported and the remaining cases are still solved.

Example:
  sssolve solve testcase1.json testcase2.json
  sssolve solve -o json --prime 7919 cases.json.gz`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration
		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		f, err := buildField(solvePrime, solveConstantTime)
		if err != nil {
			return err
		}

		// 2. Load cases. Unreadable files become failed cases.
		var cases []pipeline.Case
		for _, path := range args {
			loaded, err := pipeline.LoadFile(path)
			if err != nil {
				cases = append(cases, pipeline.Case{Name: path, Err: err})
				continue
			}
			cases = append(cases, loaded...)
		}

		logger.Info().Int("cases", len(cases)).Str("field", f.String()).Msg("solving")

		// 3. Reconstruct
		results := pipeline.Batch(cmd.Context(), cases, pipeline.BatchConfig{
			Field:   f,
			Workers: workers,
			Logger:  logger,
		})

		// 4. Report
		if err := writeReport(cmd.OutOrStdout(), results, format); err != nil {
			return err
		}

		solved, failed := report.Summary(results)
		logger.Info().Int("solved", solved).Int("failed", failed).Msg("done")

		if strict && failed > 0 {
			return fmt.Errorf("%d of %d cases failed", failed, len(results))
		}
		return nil
	},
}

// writeReport sends the report to stdout, or to --out-file when set. A file
// name ending in .gz is gzip-compressed.
func writeReport(stdout io.Writer, results []report.Result, format report.Format) error {
	if outFile == "" {
		return report.NewWriter(stdout, format).Write(results)
	}

	var buf bytes.Buffer
	if err := report.NewWriter(&buf, format).Write(results); err != nil {
		return err
	}

	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(outFile, ".gz") {
		if err := compression.CompressTo(file, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	} else if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return file.Close()
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solvePrime, "prime", field.Mersenne127Decimal, "Field modulus in base 10")
	solveCmd.Flags().BoolVar(&solveConstantTime, "constant-time", false, "Invert with constant-time arithmetic")
	solveCmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of cases solved in parallel")
	solveCmd.Flags().StringVarP(&outputFormat, "output", "o", string(report.Text), "Report format: text, json or cbor")
	solveCmd.Flags().StringVar(&outFile, "out-file", "", "Write the report to this file instead of stdout (.gz to compress)")
	solveCmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error if any case fails")
}

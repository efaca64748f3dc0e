// Package main contains the gradcert CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/gradcert/internal/cli"
	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/config"
	"github.com/Veraticus/gradcert/internal/engine"
	"github.com/Veraticus/gradcert/internal/model"
	"github.com/Veraticus/gradcert/internal/pdftext"
	"github.com/Veraticus/gradcert/internal/policy"
	"github.com/Veraticus/gradcert/internal/report"
)

// newPageSource is replaced in tests.
var newPageSource = func() engine.PageSource {
	return pdftext.NewSource()
}

type certifyOptions struct {
	output     config.Output
	dryRun     bool
	quiet      bool
	noProgress bool
}

func certifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certify <transcript.pdf|directory|glob>...",
		Short: "Certify graduate transcripts",
		Long: `Certify graduate transcripts against the configured degree policy.

Each transcript is parsed into a course ledger and checked against the graduation
requirements. A ledger CSV is written per student, plus certification_summary.csv
for the whole run. A transcript that cannot be read fails on its own; the rest of
the batch continues.

Examples:
  gradcert certify transcripts/*.pdf        # Certify every PDF in a directory
  gradcert certify transcripts/             # Same, by directory
  gradcert certify ada.pdf --dry-run        # Report only, write no files
  gradcert certify scans/ -o ledgers -q     # Custom output directory, summary only`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCertify,
	}

	// Flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir, "Directory for ledger and summary CSV files")
	cmd.Flags().Bool("dry-run", false, "Certify and report without writing files")
	cmd.Flags().BoolP("quiet", "q", false, "Only print the batch summary")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("output.dir", cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("certify.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("certify.quiet", cmd.Flags().Lookup("quiet"))
	_ = viper.BindPFlag("certify.no_progress", cmd.Flags().Lookup("no-progress"))

	return cmd
}

func runCertify(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()

	paths, err := expandInputs(args)
	if err != nil {
		return err
	}

	p, err := config.LoadPolicy(v)
	if err != nil {
		return common.NewUserError("Invalid certification policy", err)
	}
	engineConfig, err := config.LoadEngineConfig(v)
	if err != nil {
		return common.NewUserError("Invalid parser configuration", err)
	}

	opts := certifyOptions{
		output:     config.LoadOutput(v),
		dryRun:     v.GetBool("certify.dry_run"),
		quiet:      v.GetBool("certify.quiet"),
		noProgress: v.GetBool("certify.no_progress"),
	}

	certifier := engine.NewWithConfig(newPageSource(), p, engineConfig)
	return certifyBatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), certifier, paths, opts)
}

// certifyBatch certifies paths one by one, writing each ledger as soon as its
// transcript is done, then the summary and the terminal report.
func certifyBatch(ctx context.Context, out, errOut io.Writer, certifier *engine.Certifier,
	paths []string, opts certifyOptions) error {
	outputDir := opts.output.Dir
	if opts.dryRun {
		outputDir = ""
	}

	handler := cli.NewInterruptHandler(errOut)
	ctx = handler.HandleInterrupts(ctx, outputDir)
	defer handler.Stop()

	var progress *cli.Progress
	if !opts.noProgress && len(paths) > 1 {
		progress = cli.NewProgress(errOut, len(paths))
	}

	names := newLedgerNames(certifier.Policy().Program())
	var writeErrs []error
	results, batchErr := certifier.CertifyAll(ctx, paths, func(done, total int, result engine.Result) {
		handler.Finished(done, total)
		if progress != nil {
			progress.Record(result.Verdict.Passed())
		}
		if opts.dryRun {
			return
		}
		if err := saveLedger(outputDir, names.next(result.Doc), opts.output.PreparedBy, result); err != nil {
			writeErrs = append(writeErrs, err)
		}
	})
	if progress != nil {
		progress.Finish()
	}

	rows := make([]report.SummaryRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, report.NewSummaryRow(r.Doc, r.Verdict))
	}

	if !opts.dryRun && len(rows) > 0 {
		path, err := report.SaveSummary(outputDir, rows)
		if err != nil {
			writeErrs = append(writeErrs, err)
		} else {
			slog.Info("Wrote certification summary", "path", path, "transcripts", len(rows))
		}
	}

	printReport(out, results, rows, certifier.Policy(), opts)

	if batchErr != nil {
		return fmt.Errorf("certification stopped after %d of %d transcripts: %w", len(results), len(paths), batchErr)
	}
	if len(writeErrs) > 0 {
		return common.NewUserError("Some report files could not be written", errors.Join(writeErrs...))
	}
	return nil
}

func saveLedger(dir, name, preparedBy string, result engine.Result) error {
	ledger := report.NewLedger(result.Doc, result.Verdict, preparedBy)
	path, err := report.SaveLedger(dir, name, ledger)
	if err != nil {
		common.LogError(err, "Failed to write ledger", common.Fields{"source": result.Path})
		return err
	}
	common.LogDebug("Wrote ledger", common.Fields{"source": result.Path, "path": path})
	return nil
}

// ledgerNames keeps two students with the same initial and last name from sharing a file.
type ledgerNames struct {
	program string
	used    map[string]int
}

func newLedgerNames(program string) *ledgerNames {
	return &ledgerNames{program: program, used: make(map[string]int)}
}

func (n *ledgerNames) next(doc *model.TranscriptDocument) string {
	name := report.LedgerFileName(doc, n.program)
	n.used[name]++
	if count := n.used[name]; count > 1 {
		return fmt.Sprintf("%s_%d.csv", strings.TrimSuffix(name, ".csv"), count)
	}
	return name
}

func printReport(w io.Writer, results []engine.Result, rows []report.SummaryRow, p *policy.Policy, opts certifyOptions) {
	formatter := report.NewCLIFormatter()

	for _, r := range results {
		if opts.quiet {
			fmt.Fprintln(w, cli.FormatOutcome(r.Path, r.Verdict.Passed(), r.Verdict.Reason))
			continue
		}
		ledger := report.NewLedger(r.Doc, r.Verdict, opts.output.PreparedBy)
		if _, err := fmt.Fprintln(w, formatter.FormatTranscript(ledger, r.Doc)); err != nil {
			slog.Warn("Failed to write transcript report", "error", err)
			return
		}
		fmt.Fprintln(w)
	}
	if opts.quiet && len(results) > 0 {
		fmt.Fprintln(w)
	}

	if _, err := fmt.Fprintln(w, formatter.FormatBatch(rows)); err != nil {
		slog.Warn("Failed to write summary report", "error", err)
	}
	if opts.dryRun {
		fmt.Fprintln(w, cli.FormatWarning("Dry run: no ledgers or summary written"))
		return
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Ledgers written to %s (%s policy)", opts.output.Dir, p.Program())))
	}
}

// expandInputs resolves arguments to transcript paths. Directories contribute their PDF
// files; arguments with glob characters are expanded. The result is sorted and unique.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		arg = config.ExpandPath(arg)

		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, common.NewUserError(fmt.Sprintf("Invalid pattern %q", arg), err)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			matches, globErr := filepath.Glob(filepath.Join(arg, "*.pdf"))
			if globErr != nil {
				return nil, fmt.Errorf("failed to list %s: %w", arg, globErr)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		// Missing files still go through certification and fail with a read error.
		add(arg)
	}

	if len(paths) == 0 {
		return nil, common.NewUserError("No transcript files matched "+strings.Join(args, " "), common.ErrNoFiles)
	}
	sort.Strings(paths)
	return paths, nil
}

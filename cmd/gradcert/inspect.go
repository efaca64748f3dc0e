package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/gradcert/internal/cli"
	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/config"
	"github.com/Veraticus/gradcert/internal/engine"
	"github.com/Veraticus/gradcert/internal/model"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <transcript.pdf>",
		Short: "Show how a transcript is read",
		Long: `Show the detected columns of every page and the kind assigned to each line.

With --records, also print the assembled course records, the graduate boundary and
the parse diagnostics. Use this when a transcript certifies unexpectedly.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().Bool("records", false, "Also print the assembled course records")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	showRecords, _ := cmd.Flags().GetBool("records")

	p, err := config.LoadPolicy(v)
	if err != nil {
		return common.NewUserError("Invalid certification policy", err)
	}
	engineConfig, err := config.LoadEngineConfig(v)
	if err != nil {
		return common.NewUserError("Invalid parser configuration", err)
	}

	path := config.ExpandPath(args[0])
	certifier := engine.NewWithConfig(newPageSource(), p, engineConfig)

	views, err := certifier.Inspect(cmd.Context(), path)
	if err != nil {
		return common.NewUserError("Could not read "+path, err)
	}

	w := cmd.OutOrStdout()
	writePageViews(w, views)

	if showRecords {
		result := certifier.CertifyFile(cmd.Context(), path)
		writeRecords(w, result.Doc)
	}
	return nil
}

func writePageViews(w io.Writer, views []engine.PageView) {
	for _, view := range views {
		header := fmt.Sprintf("Page %d: %d column(s)", view.Layout.Page, len(view.Layout.Columns))
		if view.Layout.Fallback != "" {
			header += " (" + view.Layout.Fallback + ")"
		}
		fmt.Fprintln(w, cli.StyleTitle(header))

		for i, col := range view.Layout.Columns {
			fmt.Fprintln(w, cli.BoldStyle.Render(
				fmt.Sprintf("Column %d  x %.1f to %.1f, %d lines", col.Index+1, col.Left, col.Right, len(col.Lines))))
			for _, item := range view.Items[i] {
				kind := fmt.Sprintf("%-20s", item.Kind)
				text := item.Text()
				if item.Value != "" && item.Kind.IsControl() {
					text += "  → " + item.Value
				}
				fmt.Fprintf(w, "  %s %s\n", cli.SubtleStyle.Render(kind), text)
			}
		}
		fmt.Fprintln(w)
	}
}

func writeRecords(w io.Writer, doc *model.TranscriptDocument) {
	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("Records: %d", len(doc.Records))))
	fmt.Fprintf(w, "Student: %s (%s)\n", doc.StudentName, doc.StudentID)

	boundary := -1
	if doc.HasGraduateRecord() {
		boundary = *doc.GraduateBoundary
	}

	for i, r := range doc.Records {
		if i == boundary {
			fmt.Fprintln(w, cli.StyleInfo("---- graduate record ----"))
		}
		flags := []string{}
		if r.IsTransfer {
			flags = append(flags, "transfer")
		}
		flags = append(flags, r.Warnings...)
		fmt.Fprintf(w, "%4d  %-4s %-8s %-24s %5s %-3s %-9s p%d c%d %s\n",
			i, r.Semester, r.Code, r.Title, fmt.Sprint(r.CreditsEarned), r.Grade, r.Classification,
			r.Page, r.Column+1, strings.Join(flags, "; "))
	}

	for _, d := range doc.Diagnostics {
		fmt.Fprintln(w, cli.StyleWarning(cli.WarningIcon+" "+d))
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"signoff/internal/checklist"
	"signoff/internal/findings"
	"signoff/internal/report"
	"signoff/internal/runner"
	"signoff/internal/store"
)

var (
	runChecklistPath string
	runFindingsPath  string
	runReportFormat  string
	runHistoryPath   string
	runConcurrency   int
)

// runCmd evaluates a full checklist and renders the report.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a checklist against a findings document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := checklist.Load(runChecklistPath)
		if err != nil {
			return err
		}

		var doc *findings.Document
		if runFindingsPath != "" {
			if doc, err = findings.Load(runFindingsPath); err != nil {
				return err
			}
		}

		res, err := runner.New(logger, runConcurrency).Run(cmd.Context(), cl, doc)
		if err != nil {
			return err
		}

		switch runReportFormat {
		case "text":
			fmt.Print(report.Text(res))
		case "json":
			out, err := report.JSON(res)
			if err != nil {
				return fmt.Errorf("failed to render JSON report: %w", err)
			}
			fmt.Println(string(out))
		default:
			return fmt.Errorf("unknown report format %q (expected text or json)", runReportFormat)
		}

		if runHistoryPath != "" {
			if err := recordHistory(res, cl.Name); err != nil {
				// History is an audit convenience; a broken database must
				// not mask the verdict.
				logger.Warn("failed to record run history", zap.Error(err))
			}
		}

		if res.Failed > 0 {
			return fmt.Errorf("%d of %d checker(s) failed", res.Failed, len(res.Outcomes))
		}
		return nil
	},
}

func recordHistory(res *runner.RunResult, checklistName string) error {
	h, err := store.Open(runHistoryPath)
	if err != nil {
		return err
	}
	defer h.Close()

	entries := make([]store.Entry, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		entries = append(entries, store.Entry{
			RunID:     res.RunID,
			Checklist: checklistName,
			CheckerID: o.ID,
			Status:    o.Filtered.Status(),
			Reason:    o.Reason,
			Found:     o.Filtered.Items("found_items").Len(),
			Missing:   o.Filtered.Items("missing_items").Len(),
			Extra:     o.Filtered.Items("extra_items").Len(),
			Waived:    o.Filtered.Items("waived").Len(),
			Unused:    o.Filtered.Items("unused_waivers").Len(),
		})
	}
	return h.Record(entries)
}

func init() {
	runCmd.Flags().StringVarP(&runChecklistPath, "checklist", "c", "", "checklist YAML file (required)")
	runCmd.Flags().StringVarP(&runFindingsPath, "findings", "f", "", "findings document (YAML or JSON)")
	runCmd.Flags().StringVarP(&runReportFormat, "report", "r", "text", "report format: text or json")
	runCmd.Flags().StringVar(&runHistoryPath, "history", "", "optional SQLite database to record run history")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", runner.DefaultConcurrency, "max concurrent checker evaluations")
	_ = runCmd.MarkFlagRequired("checklist")
}

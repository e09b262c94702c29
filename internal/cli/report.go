package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"trackthething/internal/domain/models"
	reportSvc "trackthething/internal/domain/services/report"
)

const (
	outputMarkdown = "markdown"
	outputText     = "text"
	outputJSON     = "json"
)

func newReportCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build reports from a JSON file of entries",
	}

	cmd.AddCommand(
		newWeeklyCommand(app),
		newAllEntriesCommand(app),
		newWeeksCommand(app),
	)
	return cmd
}

func newWeeklyCommand(app AppContext) *cobra.Command {
	var date, output string

	cmd := &cobra.Command{
		Use:   "weekly [FILE|-]",
		Short: "Wednesday-to-Wednesday report of entries flagged for reports",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkOutput(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.readEntries(args)
			if err != nil {
				return err
			}
			svcs, err := app.services()
			if err != nil {
				return err
			}

			report, err := svcs.Report.Weekly(cmd.Context(), date, entries)
			if err != nil {
				return err
			}

			switch output {
			case outputJSON:
				return writeJSON(app.Stdout, report)
			case outputText:
				return writeText(app.Stdout, report.Text.Completed+"\n"+report.Text.InProgress)
			default:
				return writeText(app.Stdout, report.Markdown)
			}
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "any date in the week, YYYY-MM-DD (default today)")
	addOutputFlag(cmd, &output)
	return cmd
}

func newAllEntriesCommand(app AppContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "all [FILE|-]",
		Aliases: []string{"all-entries"},
		Short:   "Report of every entry grouped by date",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkOutput(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.readEntries(args)
			if err != nil {
				return err
			}
			svcs, err := app.services()
			if err != nil {
				return err
			}

			report, err := svcs.Report.AllEntries(cmd.Context(), entries)
			if err != nil {
				return err
			}

			switch output {
			case outputJSON:
				return writeJSON(app.Stdout, report)
			case outputText:
				return writeText(app.Stdout, report.Text)
			default:
				return writeText(app.Stdout, report.Markdown)
			}
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newWeeksCommand(app AppContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "weeks [FILE|-]",
		Short: "List weeks that contain entries flagged for reports, newest first",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkOutput(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.readEntries(args)
			if err != nil {
				return err
			}
			svcs, err := app.services()
			if err != nil {
				return err
			}

			weeks, err := svcs.Report.Weeks(cmd.Context(), entries)
			if err != nil {
				return err
			}

			if output == outputJSON {
				return writeJSON(app.Stdout, map[string][]models.Week{"weeks": weeks})
			}
			for _, w := range weeks {
				if _, err := fmt.Fprintln(app.Stdout, w.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func checkOutput(output string) error {
	switch output {
	case outputMarkdown, outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output %q (want markdown, text or json)", output)
	}
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", outputMarkdown, "output: markdown, text or json")
}

// readEntries accepts either {"entries": [...]} or a bare JSON array
func (app AppContext) readEntries(args []string) ([]models.ReportEntry, error) {
	data, err := app.readInput(args)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("no entries: input is empty")
	}

	if trimmed[0] == '[' {
		var entries []models.ReportEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode entries: %w", err)
		}
		return entries, nil
	}

	var req reportSvc.ReportRequest
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return req.Entries, nil
}

package cli

import (
	"github.com/spf13/cobra"

	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
)

func newExportCommand(app AppContext) *cobra.Command {
	var (
		format string
		req    exportSvc.ExportRequest
		typ    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "export [FILE|-]",
		Short: "Convert one entry body (HTML, code or Markdown) to jira, markdown or text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := app.readInput(args)
			if err != nil {
				return err
			}

			svcs, err := app.services()
			if err != nil {
				return err
			}

			req.Content = string(content)
			req.ContentType = models.ContentType(typ)

			result, err := svcs.Export.Export(cmd.Context(), models.Format(format), &req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(app.Stdout, result)
			}
			return writeText(app.Stdout, result.Text)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(models.FormatMarkdown), "output format: jira, markdown or text")
	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "entry title")
	cmd.Flags().StringVar(&typ, "type", string(models.ContentTypeRichText), "content type: rich_text, code or markdown")
	cmd.Flags().StringVarP(&req.Profile, "profile", "p", "", "markdown profile (default from DEFAULT_MARKDOWN_PROFILE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the conversion result as JSON")

	return cmd
}

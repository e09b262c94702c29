package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trackthething/internal/profiles"
)

func newProfilesCommand(app AppContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profiles [NAME]",
		Short: "List Markdown export profiles, or show one profile's options",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := app.services()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				p, err := svcs.Profiles.Get(args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(app.Stdout, p)
				}
				return writeProfile(app, p)
			}

			list := svcs.Profiles.List()
			if asJSON {
				return writeJSON(app.Stdout, list)
			}

			tw := tabwriter.NewWriter(app.Stdout, 0, 4, 2, ' ', 0)
			for _, p := range list {
				marker := ""
				if p.Name == app.Config.DefaultMarkdownProfile {
					marker = " (default)"
				}
				fmt.Fprintf(tw, "%s%s\t%s\n", p.Name, marker, p.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print profiles as JSON")
	return cmd
}

func writeProfile(app AppContext, p *profiles.Profile) error {
	o := p.Options
	tw := tabwriter.NewWriter(app.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "name\t%s\n", p.Name)
	fmt.Fprintf(tw, "heading_style\t%s\n", o.HeadingStyle)
	fmt.Fprintf(tw, "code_block_style\t%s\n", o.CodeBlockStyle)
	fmt.Fprintf(tw, "bullet_list_marker\t%s\n", o.BulletListMarker)
	fmt.Fprintf(tw, "em_delimiter\t%s\n", o.EmDelimiter)
	fmt.Fprintf(tw, "strong_delimiter\t%s\n", o.StrongDelimiter)
	fmt.Fprintf(tw, "fence\t%s\n", o.Fence)
	fmt.Fprintf(tw, "plugins\t%s\n", strings.Join(o.Plugins, ", "))
	return tw.Flush()
}

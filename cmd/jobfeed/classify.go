package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/filter"
)

var classifyCmd = &cobra.Command{
	Use:   "classify TITLE...",
	Short: "Show how the keyword lists classify job titles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	return printVerdicts(cmd.OutOrStdout(), setupClassifier(cfg), args)
}

func printVerdicts(w io.Writer, c *filter.TitleClassifier, titles []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, title := range titles {
		v := c.Explain(title)
		var verdict, reason string
		switch {
		case v.Accepted:
			verdict, reason = "ACCEPT", fmt.Sprintf("include %q", v.Include)
		case v.Include == "":
			verdict, reason = "REJECT", "no include keyword"
		default:
			verdict, reason = "REJECT", fmt.Sprintf("exclude %q", v.Exclude)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", verdict, title, reason)
	}
	return tw.Flush()
}

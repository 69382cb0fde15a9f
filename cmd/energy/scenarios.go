package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ja7ad/energy/pkg/consumption"
	"github.com/ja7ad/energy/pkg/load"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List scenarios with their parameters and recommended method",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			printScenarios(cmd.OutOrStdout(), eng)
			return nil
		},
	}
}

func printScenarios(w io.Writer, eng *consumption.Engine) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tMETHOD\tREQUIRED\tOPTIONAL")
	fmt.Fprintln(tw, "--------\t------\t--------\t--------")
	for _, s := range load.Scenarios {
		c := eng.Capabilities(s)
		var optional []string
		for _, f := range c.Fields {
			if !eng.IsRequired(s, f) {
				optional = append(optional, string(f))
			}
		}
		required := make([]string, 0, len(c.Required))
		for _, f := range c.Required {
			required = append(required, string(f))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s, c.Recommended,
			strings.Join(required, ","), strings.Join(optional, ","))
	}
	tw.Flush()
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scholarly-group/screening-cli/internal/pipeline"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Describe the screening pipeline stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "#\tSTAGE\tRESPONSIBILITY")
		for i, st := range pipeline.DescribeStages() {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, st.Name, st.Responsibility)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}

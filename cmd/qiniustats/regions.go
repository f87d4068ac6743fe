package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DanikLP1/qiniu-stats/internal/qiniu"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the known storage regions and their hosts",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "REGION\tUPLOAD\tRS\tAPI")
		for _, r := range qiniu.AllRegions() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r, r.UploadHost(), r.RsHost(), r.APIHost())
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

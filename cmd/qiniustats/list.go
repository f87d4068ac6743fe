package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DanikLP1/qiniu-stats/internal/db"
	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

var (
	listBucket      string
	listGranularity string
	listLimit       int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show known buckets or recent statistic records",
	Long: `Without flags prints all known buckets. With --bucket prints the most
recent statistic records for that bucket at the chosen granularity.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if listBucket == "" {
			listBuckets(a)
			return
		}
		listStatistics(a)
	},
}

func listBuckets(a *app) {
	buckets, err := a.db.ListValidBuckets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUCKET\tACCOUNT\tREGION\tPRIVATE\tLAST SYNC")
	for _, b := range buckets {
		last := "-"
		if b.LastSyncTime != nil {
			last = b.LastSyncTime.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", b.Name, b.Account.Name, b.Region, b.Private, last)
	}
	w.Flush()
}

func listStatistics(a *app) {
	g, err := stats.ParseGranularity(listGranularity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	bucket, err := findBucketByName(a, listBucket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	recs, err := a.db.RecentStatistics(g, bucket.ID, listLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTORAGE\tFILES\tGET\tPUT\tTRAFFIC\tCDN")
	for _, r := range recs {
		f := r.Stats()
		storage := f.StandardStorage + f.LineStorage + f.ArchiveStorage +
			f.ArchiveIrStorage + f.DeepArchiveStorage + f.IntelligentTieringStorage
		files := f.StandardCount + f.LineCount + f.ArchiveCount +
			f.ArchiveIrCount + f.DeepArchiveCount + f.IntelligentTieringCount
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.At().Format("2006-01-02 15:04:05"),
			formatSize(storage), files, f.GetRequests, f.PutRequests,
			formatSize(f.InternetTraffic), formatSize(f.CdnTraffic))
	}
	w.Flush()
}

// findBucketByName matches by name across all valid accounts.
func findBucketByName(a *app, name string) (*db.Bucket, error) {
	buckets, err := a.db.ListValidBuckets()
	if err != nil {
		return nil, err
	}
	for i := range buckets {
		if buckets[i].Name == name {
			return &buckets[i], nil
		}
	}
	return nil, fmt.Errorf("bucket %q not found", name)
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	listCmd.Flags().StringVarP(&listBucket, "bucket", "b", "", "bucket name")
	listCmd.Flags().StringVarP(&listGranularity, "granularity", "g", "hour", "5min|hour|day")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 24, "max records to show")

	rootCmd.AddCommand(listCmd)
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// WriteTrec prints one "label topic value" line per value in the classic
// trec_eval layout: per-topic values first (when present), then "all".
func WriteTrec(r *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)

	fmt.Fprintf(tw, "runid\tall\t%s\n", r.Meta.RunTag)
	fmt.Fprintf(tw, "num_q\tall\t%d\n", r.Meta.Topics)

	for _, tr := range r.PerTopic {
		for _, v := range tr.Values {
			fmt.Fprintf(tw, "%s\t%s\t%.4f\n", v.Label, tr.TopicID, v.Value)
		}
	}
	for _, v := range r.Summary {
		fmt.Fprintf(tw, "%s\tall\t%.4f\n", v.Label, v.Value)
	}

	return tw.Flush()
}

// WriteTable prints a human-readable summary with the per-topic spread of
// every value.
func WriteTable(r *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title := r.Meta.RunTag
	if r.Meta.Name != "" {
		title = r.Meta.Name + " / " + r.Meta.RunTag
	}
	fmt.Fprintf(tw, "\n=== Evaluation: %s ===\n\n", title)
	fmt.Fprintf(tw, "Topics evaluated: %d, skipped: %d, relevance level: %d\n\n",
		r.Meta.Topics, len(r.Skipped), r.Config.RelevanceLevel)

	header := []string{"Measure", "Value", "Agg", "Topics", "Min", "Max", "StdDev"}
	writeRow(tw, header)
	writeSeparator(tw, len(header))

	for _, v := range r.Summary {
		writeRow(tw, []string{
			v.Label,
			fmt.Sprintf("%.4f", v.Value),
			aggAbbrev(v.Aggregation),
			fmt.Sprintf("%d", v.Topics),
			fmt.Sprintf("%.4f", v.Min),
			fmt.Sprintf("%.4f", v.Max),
			fmt.Sprintf("%.4f", v.StdDev),
		})
	}

	if !r.Timing.IsZero() {
		fmt.Fprintf(tw, "\nPer-topic time: min %s, p50 %s, p95 %s, max %s, total %s\n",
			fmtDuration(r.Timing.Min),
			fmtDuration(r.Timing.Median),
			fmtDuration(r.Timing.P95),
			fmtDuration(r.Timing.Max),
			fmtDuration(r.Timing.Total),
		)
	}

	return tw.Flush()
}

func writeRow(tw *tabwriter.Writer, cols []string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func writeSeparator(tw *tabwriter.Writer, n int) {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(tw, sep)
}

func aggAbbrev(agg string) string {
	if agg == "geometric" {
		return "geo"
	}
	return "mean"
}

func fmtDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	}
}

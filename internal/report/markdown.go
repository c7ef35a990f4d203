package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ping-tool/internal/models"
)

// WriteMarkdown renders the run summary as a markdown report with one
// statistics table per category and a detail section per file with
// issues.
func WriteMarkdown(w io.Writer, summary *models.Summary) error {
	fmt.Fprintln(w, "# Ping Analysis Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)

	withTS, withMissing, withAbnormal, totalMissing, totalAbnormal := summary.Counts()

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| Files analyzed | %d |\n", summary.TotalFiles())
	fmt.Fprintf(w, "| Files with timestamps | %d |\n", withTS)
	fmt.Fprintf(w, "| Files with missing pings | %d |\n", withMissing)
	fmt.Fprintf(w, "| Files with abnormal intervals | %d |\n", withAbnormal)
	fmt.Fprintf(w, "| Total missing pings | %d |\n", totalMissing)
	fmt.Fprintf(w, "| Total abnormal intervals | %d |\n", totalAbnormal)
	fmt.Fprintln(w)

	for _, name := range summary.Categories() {
		group := summary.ByCategory[name]

		fmt.Fprintf(w, "## %s (%d files)\n", strings.ToUpper(name), len(group))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| File | Target | Pings | Loss % | Min (ms) | Avg (ms) | Max (ms) | Missing | Abnormal |")
		fmt.Fprintln(w, "|------|--------|-------|--------|----------|----------|----------|---------|----------|")
		for _, a := range group {
			fmt.Fprintf(w, "| %s | %s | %d | %.1f | %.2f | %.2f | %.2f | %d | %d |\n",
				a.Filename, a.DisplayTarget(), a.Received, a.PacketLoss,
				a.Latency.Min, a.Latency.Avg, a.Latency.Max,
				len(a.MissingSeq), len(a.AbnormalIntervals))
		}
		fmt.Fprintln(w)
	}

	wroteHeading := false
	for _, a := range summary.All() {
		if !a.HasIssues() {
			continue
		}
		if !wroteHeading {
			fmt.Fprintln(w, "## Issue Details")
			fmt.Fprintln(w)
			wroteHeading = true
		}
		writeMarkdownDetail(w, a)
	}
	return nil
}

func writeMarkdownDetail(w io.Writer, a *models.Analysis) {
	fmt.Fprintf(w, "### %s\n", a.Filename)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Target %s, sequences %d-%d, %.1f%% packet loss.\n",
		a.DisplayTarget(), a.FirstSeq(), a.LastSeq(), a.PacketLoss)
	fmt.Fprintln(w)

	if len(a.MissingSeq) > 0 {
		fmt.Fprintf(w, "Missing sequences: %s\n", joinInts(a.MissingSeq, ", "))
		fmt.Fprintln(w)
	}

	if len(a.AbnormalIntervals) > 0 {
		fmt.Fprintln(w, "| After seq | Gap (s) | Expected (s) |")
		fmt.Fprintln(w, "|-----------|---------|--------------|")
		for _, ab := range a.AbnormalIntervals {
			fmt.Fprintf(w, "| %d | %.2f | %.2f |\n", ab.AfterSeq, ab.Gap, ab.Expected)
		}
		fmt.Fprintln(w)
	}
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, sep)
}

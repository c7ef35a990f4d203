package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ping-tool/internal/models"
)

// WriteText renders the run summary as a plain-text report in the
// classic banner style.
func WriteText(w io.Writer, summary *models.Summary) error {
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PING ANALYSIS SUMMARY REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Report generated on: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, thin)

	withTS, withMissing, withAbnormal, totalMissing, totalAbnormal := summary.Counts()
	total := summary.TotalFiles()

	fmt.Fprintf(w, "Total files analyzed: %d\n", total)
	fmt.Fprintf(w, "Files with timestamp data (-D option): %d\n", withTS)
	fmt.Fprintf(w, "Files without timestamp data: %d\n", total-withTS)
	fmt.Fprintf(w, "Files with missing pings: %d\n", withMissing)
	fmt.Fprintf(w, "Files with abnormal intervals: %d\n", withAbnormal)
	fmt.Fprintf(w, "Total missing pings: %d\n", totalMissing)
	fmt.Fprintf(w, "Total abnormal intervals: %d\n", totalAbnormal)
	fmt.Fprintln(w, thin)

	fmt.Fprintln(w, "\nCATEGORY SUMMARY:")
	for _, name := range summary.Categories() {
		group := summary.ByCategory[name]
		catMissing, catAbnormal, catWithTS := 0, 0, 0
		for _, a := range group {
			catMissing += len(a.MissingSeq)
			catAbnormal += len(a.AbnormalIntervals)
			if a.HasTimestamps {
				catWithTS++
			}
		}

		fmt.Fprintf(w, "\n%s (%d files, %d with timestamps):\n", strings.ToUpper(name), len(group), catWithTS)
		fmt.Fprintf(w, "  Missing pings: %d\n", catMissing)
		fmt.Fprintf(w, "  Abnormal intervals: %d\n", catAbnormal)
		fmt.Fprintf(w, "  Average ping time: %.2fms\n", summary.CategoryAvgLatency(name))

		for _, a := range group {
			var issues []string
			if len(a.MissingSeq) > 0 {
				issues = append(issues, fmt.Sprintf("%d missing pings", len(a.MissingSeq)))
			}
			if len(a.AbnormalIntervals) > 0 {
				issues = append(issues, fmt.Sprintf("%d abnormal intervals", len(a.AbnormalIntervals)))
			}
			if len(issues) > 0 {
				fmt.Fprintf(w, "  - %s (%s): %s\n", a.Filename, a.DisplayTarget(), strings.Join(issues, ", "))
			}
		}
	}

	fmt.Fprintln(w, "\nFILE DETAILS:")
	for _, a := range summary.All() {
		writeFileDetail(w, a)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "END OF REPORT")
	fmt.Fprintln(w, rule)
	return nil
}

func writeFileDetail(w io.Writer, a *models.Analysis) {
	fmt.Fprintf(w, "\n%s\n", a.Filename)
	fmt.Fprintf(w, "  Target: %s\n", a.DisplayTarget())
	fmt.Fprintf(w, "  Total pings: %d (sequences %d-%d)\n", a.Received, a.FirstSeq(), a.LastSeq())
	fmt.Fprintf(w, "  Packet loss: %.1f%%\n", a.PacketLoss)
	fmt.Fprintf(w, "  Ping statistics: %.2fms avg, %.2fms min, %.2fms max\n",
		a.Latency.Avg, a.Latency.Min, a.Latency.Max)

	if a.HasTimestamps {
		fmt.Fprintf(w, "  Average interval: %.2f seconds\n", a.AvgInterval)
	} else {
		fmt.Fprintln(w, "  Note: no timestamp data (-D option); interval analysis unavailable")
	}

	if len(a.MissingSeq) > 0 {
		fmt.Fprintf(w, "  Missing sequences: %v\n", a.MissingSeq)
	} else {
		fmt.Fprintln(w, "  No missing sequences")
	}

	switch {
	case len(a.AbnormalIntervals) > 0:
		fmt.Fprintln(w, "  Abnormal intervals (potential missed pings):")
		for _, ab := range a.AbnormalIntervals {
			fmt.Fprintf(w, "    After sequence %d: %.2f seconds (expected ~%.2f)\n",
				ab.AfterSeq, ab.Gap, ab.Expected)
		}
	case a.HasTimestamps:
		fmt.Fprintln(w, "  No abnormal intervals detected")
	}
}

package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"

	"ping-tool/internal/models"
)

// ErrNoData is returned when a file contains no parsable ping replies.
// It is an expected outcome for empty or malformed files, distinct from
// an I/O error.
var ErrNoData = errors.New("no ping data found")

// abnormalFactor and abnormalWindow control abnormal-interval detection:
// a gap is abnormal when it exceeds abnormalFactor times the median of
// the up-to-abnormalWindow preceding intervals.
const (
	abnormalFactor = 2.0
	abnormalWindow = 10
)

var (
	// PING server.acme.com (10.1.2.3) 56(84) bytes of data.
	// PING 10.1.2.3 56(84) bytes of data.
	headerPattern = regexp.MustCompile(`^PING\s+(\S+)(?:\s+\((\S+)\))?`)

	// [1690000000.123456] prefix written by ping -D
	timestampPattern = regexp.MustCompile(`^\[(\d+\.\d+)\]`)

	// 64 bytes from host.dom (10.1.2.3): icmp_seq=4 ttl=64 time=0.321 ms
	// 64 bytes from 10.1.2.3: icmp_seq=4 ttl=64 time=0.321 ms
	// Older iputils writes icmp_req instead of icmp_seq.
	replyPattern = regexp.MustCompile(`64 bytes from (?:([^()]+) \(([^()]+)\)|([^:]+)): icmp_[rs]eq=(\d+) ttl=\d+ time=([0-9.]+) ms`)
)

// ParseFile reads and analyzes one ping log file. A read failure is a
// recoverable per-file error for the caller; ErrNoData means the file had
// no reply lines.
func ParseFile(path string) (*models.Analysis, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	analysis, err := Parse(file)
	if err != nil {
		return nil, err
	}
	analysis.Filename = path
	return analysis, nil
}

// Parse analyzes the raw text of one ping log. Lines that are not reply
// lines (headers, summaries, noise) are skipped; they are not errors.
func Parse(r io.Reader) (*models.Analysis, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	analysis := &models.Analysis{Target: "Unknown"}
	if len(lines) > 0 {
		parseHeader(lines[0], analysis)
	}

	// Timestamp support is a file-wide decision: per-line timestamps are
	// only extracted once at least one line carries the -D prefix.
	for _, line := range lines {
		if timestampPattern.MatchString(line) {
			analysis.HasTimestamps = true
			break
		}
	}

	for _, line := range lines {
		obs, ok := parseReply(line, analysis)
		if !ok {
			continue
		}
		analysis.Observations = append(analysis.Observations, obs)
	}

	if len(analysis.Observations) == 0 {
		return nil, ErrNoData
	}

	analysis.MissingSeq = missingSequences(analysis.Observations)
	computeIntervals(analysis)
	computeLatencyStats(analysis)
	computeLoss(analysis)

	return analysis, nil
}

// parseHeader extracts the target address and optional hostname from the
// PING header line. A malformed header never fails the parse.
func parseHeader(line string, a *models.Analysis) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if m[2] != "" {
		a.Hostname = m[1]
		a.Target = m[2]
	} else {
		a.Target = m[1]
	}
}

// parseReply extracts one observation from a reply line. When the file
// carries timestamps, lines without the bracket prefix are skipped.
func parseReply(line string, a *models.Analysis) (models.Observation, bool) {
	var obs models.Observation

	if a.HasTimestamps {
		tm := timestampPattern.FindStringSubmatch(line)
		if tm == nil {
			return obs, false
		}
		ts, err := strconv.ParseFloat(tm[1], 64)
		if err != nil {
			return obs, false
		}
		obs.Timestamp = ts
	}

	m := replyPattern.FindStringSubmatch(line)
	if m == nil {
		return obs, false
	}

	// Reply lines repeat the hostname when the target was given by name;
	// keep it if the header did not provide one.
	if a.Hostname == "" && m[1] != "" {
		a.Hostname = m[1]
		if a.Target == "Unknown" {
			a.Target = m[2]
		}
	}

	seq, err := strconv.Atoi(m[4])
	if err != nil {
		return obs, false
	}
	latency, err := strconv.ParseFloat(m[5], 64)
	if err != nil {
		return obs, false
	}

	obs.Seq = seq
	obs.Latency = latency
	return obs, true
}

// missingSequences returns the sorted sequence numbers absent from the
// contiguous range spanned by the observations.
func missingSequences(obs []models.Observation) []int {
	seen := make(map[int]bool, len(obs))
	min, max := obs[0].Seq, obs[0].Seq
	for _, o := range obs {
		seen[o.Seq] = true
		if o.Seq < min {
			min = o.Seq
		}
		if o.Seq > max {
			max = o.Seq
		}
	}

	var missing []int
	for seq := min; seq <= max; seq++ {
		if !seen[seq] {
			missing = append(missing, seq)
		}
	}
	sort.Ints(missing)
	return missing
}

// computeIntervals derives consecutive reply intervals and flags abnormal
// gaps. Interval analysis is only defined when the file carries
// timestamps and at least two replies exist; otherwise the fields stay
// unset rather than fabricated.
func computeIntervals(a *models.Analysis) {
	if !a.HasTimestamps || len(a.Observations) < 2 {
		return
	}

	intervals := make([]float64, len(a.Observations)-1)
	var sum float64
	for i := 1; i < len(a.Observations); i++ {
		intervals[i-1] = a.Observations[i].Timestamp - a.Observations[i-1].Timestamp
		sum += intervals[i-1]
	}
	a.AvgInterval = sum / float64(len(intervals))

	// A gap is judged against the median of the trailing window of
	// preceding intervals, which tracks interval drift better than a
	// global average. The first gap has no reference and is never
	// flagged.
	for i, gap := range intervals {
		if i == 0 {
			continue
		}
		start := i - abnormalWindow
		if start < 0 {
			start = 0
		}
		ref := median(intervals[start:i])
		if ref > 0 && gap > abnormalFactor*ref {
			a.AbnormalIntervals = append(a.AbnormalIntervals, models.AbnormalInterval{
				AfterSeq: a.Observations[i].Seq,
				Gap:      gap,
				Expected: ref,
			})
		}
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func computeLatencyStats(a *models.Analysis) {
	if len(a.Observations) == 0 {
		return
	}
	min, max, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, o := range a.Observations {
		if o.Latency < min {
			min = o.Latency
		}
		if o.Latency > max {
			max = o.Latency
		}
		sum += o.Latency
	}
	a.Latency = models.LatencyStats{
		Min: min,
		Max: max,
		Avg: sum / float64(len(a.Observations)),
	}
}

// computeLoss derives packet loss from the observed sequence range. Loss
// clamps at zero when the data is inconsistent (more replies than the
// range implies, from repeated sequence numbers).
func computeLoss(a *models.Analysis) {
	a.Received = len(a.Observations)
	a.Transmitted = a.LastSeq() - a.FirstSeq() + 1
	if a.Transmitted <= 0 {
		return
	}
	loss := float64(a.Transmitted-a.Received) / float64(a.Transmitted) * 100
	if loss < 0 {
		loss = 0
	}
	a.PacketLoss = loss
}

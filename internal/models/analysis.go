package models

import "fmt"

// Observation represents a single successful ping reply parsed from a log.
// Timestamp is Unix epoch seconds and is only meaningful when the owning
// Analysis has HasTimestamps set.
type Observation struct {
	Seq       int     `json:"seq"`
	Timestamp float64 `json:"timestamp,omitempty"`
	Latency   float64 `json:"latency_ms"`
}

// AbnormalInterval is a gap between consecutive timestamped replies that
// exceeded the local reference interval, suggesting a delayed or missed
// reply not reflected in the sequence numbering.
type AbnormalInterval struct {
	AfterSeq int     `json:"after_seq"`
	Gap      float64 `json:"gap_seconds"`
	Expected float64 `json:"expected_seconds"`
}

// LatencyStats holds aggregate round-trip statistics in milliseconds.
type LatencyStats struct {
	Min float64 `json:"min_ms"`
	Max float64 `json:"max_ms"`
	Avg float64 `json:"avg_ms"`
}

// Analysis is the aggregate result of parsing one ping log file.
type Analysis struct {
	Filename      string  `json:"filename"`
	Category      string  `json:"category,omitempty"`
	Target        string  `json:"target"`
	Hostname      string  `json:"hostname,omitempty"`
	HasTimestamps bool    `json:"has_timestamps"`
	AvgInterval   float64 `json:"avg_interval,omitempty"` // seconds, 0 without timestamps

	Observations      []Observation      `json:"observations"`
	MissingSeq        []int              `json:"missing_seq"`
	AbnormalIntervals []AbnormalInterval `json:"abnormal_intervals"`

	Latency     LatencyStats `json:"latency"`
	Transmitted int          `json:"transmitted"`
	Received    int          `json:"received"`
	PacketLoss  float64      `json:"packet_loss"` // percentage
}

// DisplayTarget returns "hostname (address)" when a hostname is known,
// otherwise just the address.
func (a *Analysis) DisplayTarget() string {
	if a.Hostname != "" {
		return fmt.Sprintf("%s (%s)", a.Hostname, a.Target)
	}
	return a.Target
}

// FirstSeq returns the lowest observed sequence number.
func (a *Analysis) FirstSeq() int {
	if len(a.Observations) == 0 {
		return 0
	}
	min := a.Observations[0].Seq
	for _, o := range a.Observations[1:] {
		if o.Seq < min {
			min = o.Seq
		}
	}
	return min
}

// LastSeq returns the highest observed sequence number.
func (a *Analysis) LastSeq() int {
	if len(a.Observations) == 0 {
		return 0
	}
	max := a.Observations[0].Seq
	for _, o := range a.Observations[1:] {
		if o.Seq > max {
			max = o.Seq
		}
	}
	return max
}

// HasIssues reports whether the analysis found missing pings or abnormal
// intervals.
func (a *Analysis) HasIssues() bool {
	return len(a.MissingSeq) > 0 || len(a.AbnormalIntervals) > 0
}

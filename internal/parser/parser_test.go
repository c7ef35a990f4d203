package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name         string
		log          string
		wantTarget   string
		wantHostname string
	}{
		{
			name:         "hostname with address",
			log:          "PING server.acme.com (10.1.2.3) 56(84) bytes of data.\n64 bytes from 10.1.2.3: icmp_seq=1 ttl=64 time=0.5 ms\n",
			wantTarget:   "10.1.2.3",
			wantHostname: "server.acme.com",
		},
		{
			name:       "address only",
			log:        "PING 10.1.2.3 56(84) bytes of data.\n64 bytes from 10.1.2.3: icmp_seq=1 ttl=64 time=0.5 ms\n",
			wantTarget: "10.1.2.3",
		},
		{
			name:       "malformed header does not fail the parse",
			log:        "garbage first line\n64 bytes from 10.1.2.3: icmp_seq=1 ttl=64 time=0.5 ms\n",
			wantTarget: "Unknown",
		},
		{
			name:         "hostname recovered from reply lines",
			log:          "nonsense\n64 bytes from server.acme.com (10.1.2.3): icmp_seq=1 ttl=64 time=0.5 ms\n",
			wantTarget:   "10.1.2.3",
			wantHostname: "server.acme.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := Parse(strings.NewReader(tt.log))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if analysis.Target != tt.wantTarget {
				t.Errorf("Target = %q, want %q", analysis.Target, tt.wantTarget)
			}
			if analysis.Hostname != tt.wantHostname {
				t.Errorf("Hostname = %q, want %q", analysis.Hostname, tt.wantHostname)
			}
		})
	}
}

func TestParseMissingSequences(t *testing.T) {
	var b strings.Builder
	b.WriteString("PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n")
	for _, seq := range []int{1, 2, 4, 5} {
		fmt.Fprintf(&b, "64 bytes from 10.0.0.1: icmp_seq=%d ttl=64 time=1.0 ms\n", seq)
	}

	analysis, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(analysis.MissingSeq) != 1 || analysis.MissingSeq[0] != 3 {
		t.Errorf("MissingSeq = %v, want [3]", analysis.MissingSeq)
	}
	if analysis.FirstSeq() != 1 || analysis.LastSeq() != 5 {
		t.Errorf("sequence range = [%d,%d], want [1,5]", analysis.FirstSeq(), analysis.LastSeq())
	}
}

func TestParseNoData(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{name: "empty input", log: ""},
		{name: "header only", log: "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n"},
		{name: "no reply lines", log: "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n--- 10.0.0.1 ping statistics ---\n5 packets transmitted, 0 received, 100% packet loss, time 4000ms\n"},
		{name: "unrelated text", log: "this is\nnot a ping log\nat all\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.log))
			if !errors.Is(err, ErrNoData) {
				t.Errorf("Parse() error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestParsePacketLoss(t *testing.T) {
	// 10 transmitted (range 1..10), 8 received.
	var b strings.Builder
	b.WriteString("PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n")
	for seq := 1; seq <= 10; seq++ {
		if seq == 4 || seq == 7 {
			continue
		}
		fmt.Fprintf(&b, "64 bytes from 10.0.0.1: icmp_seq=%d ttl=64 time=1.0 ms\n", seq)
	}

	analysis, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if analysis.Transmitted != 10 || analysis.Received != 8 {
		t.Fatalf("Transmitted/Received = %d/%d, want 10/8", analysis.Transmitted, analysis.Received)
	}
	if analysis.PacketLoss != 20.0 {
		t.Errorf("PacketLoss = %v, want 20.0", analysis.PacketLoss)
	}
}

func TestParsePacketLossClampsOnDuplicates(t *testing.T) {
	// Repeated sequence numbers make received exceed the expected range.
	log := "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n" +
		"64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=1.0 ms\n" +
		"64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=1.1 ms\n" +
		"64 bytes from 10.0.0.1: icmp_seq=2 ttl=64 time=1.2 ms\n"

	analysis, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if analysis.PacketLoss != 0 {
		t.Errorf("PacketLoss = %v, want 0 (clamped)", analysis.PacketLoss)
	}
}

func TestParseLatencyStats(t *testing.T) {
	log := "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n" +
		"64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=1.0 ms\n" +
		"64 bytes from 10.0.0.1: icmp_seq=2 ttl=64 time=2.0 ms\n" +
		"64 bytes from 10.0.0.1: icmp_seq=3 ttl=64 time=3.0 ms\n"

	analysis, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if analysis.Latency.Min != 1.0 {
		t.Errorf("Latency.Min = %v, want 1.0", analysis.Latency.Min)
	}
	if analysis.Latency.Max != 3.0 {
		t.Errorf("Latency.Max = %v, want 3.0", analysis.Latency.Max)
	}
	if analysis.Latency.Avg != 2.0 {
		t.Errorf("Latency.Avg = %v, want 2.0", analysis.Latency.Avg)
	}
}

func TestParseWithoutTimestamps(t *testing.T) {
	log := "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n" +
		"64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=1.0 ms\n" +
		"64 bytes from 10.0.0.1: icmp_seq=2 ttl=64 time=2.0 ms\n"

	analysis, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if analysis.HasTimestamps {
		t.Error("HasTimestamps = true, want false")
	}
	if analysis.AvgInterval != 0 {
		t.Errorf("AvgInterval = %v, want 0 (undefined without timestamps)", analysis.AvgInterval)
	}
	if analysis.AbnormalIntervals != nil {
		t.Errorf("AbnormalIntervals = %v, want nil without timestamps", analysis.AbnormalIntervals)
	}
}

func TestParseWithTimestamps(t *testing.T) {
	var b strings.Builder
	b.WriteString("PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n")
	// Steady one-second cadence, then a five-second gap after seq 8.
	base := 1700000000.0
	elapsed := 0.0
	for seq := 1; seq <= 10; seq++ {
		if seq == 9 {
			elapsed += 5.0
		} else if seq > 1 {
			elapsed += 1.0
		}
		fmt.Fprintf(&b, "[%.6f] 64 bytes from 10.0.0.1: icmp_seq=%d ttl=64 time=1.5 ms\n", base+elapsed, seq)
	}

	analysis, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !analysis.HasTimestamps {
		t.Fatal("HasTimestamps = false, want true")
	}
	if len(analysis.AbnormalIntervals) != 1 {
		t.Fatalf("AbnormalIntervals = %v, want exactly one", analysis.AbnormalIntervals)
	}
	ab := analysis.AbnormalIntervals[0]
	if ab.AfterSeq != 8 {
		t.Errorf("AfterSeq = %d, want 8", ab.AfterSeq)
	}
	if math.Abs(ab.Gap-5.0) > 1e-6 {
		t.Errorf("Gap = %v, want 5.0", ab.Gap)
	}
	if math.Abs(ab.Expected-1.0) > 1e-6 {
		t.Errorf("Expected = %v, want 1.0", ab.Expected)
	}

	wantAvg := (7*1.0 + 5.0 + 1.0) / 9
	if math.Abs(analysis.AvgInterval-wantAvg) > 1e-6 {
		t.Errorf("AvgInterval = %v, want %v", analysis.AvgInterval, wantAvg)
	}
}

func TestParseSteadyIntervalsNotFlagged(t *testing.T) {
	var b strings.Builder
	b.WriteString("PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n")
	for seq := 1; seq <= 20; seq++ {
		fmt.Fprintf(&b, "[%.6f] 64 bytes from 10.0.0.1: icmp_seq=%d ttl=64 time=1.5 ms\n", 1700000000.0+float64(seq), seq)
	}

	analysis, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(analysis.AbnormalIntervals) != 0 {
		t.Errorf("AbnormalIntervals = %v, want none for a steady cadence", analysis.AbnormalIntervals)
	}
}

func TestParseMixedTimestampLines(t *testing.T) {
	// One prefixed line makes the file a timestamped file; unprefixed
	// reply lines then fail the timestamp pattern and are skipped.
	log := "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n" +
		"[1700000000.000000] 64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=1.0 ms\n" +
		"64 bytes from 10.0.0.1: icmp_seq=2 ttl=64 time=2.0 ms\n" +
		"[1700000002.000000] 64 bytes from 10.0.0.1: icmp_seq=3 ttl=64 time=3.0 ms\n"

	analysis, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !analysis.HasTimestamps {
		t.Error("HasTimestamps = false, want true")
	}
	if len(analysis.Observations) != 2 {
		t.Errorf("Observations = %d, want 2 (unprefixed line skipped)", len(analysis.Observations))
	}
}

func TestParseOlderIcmpReqFormat(t *testing.T) {
	log := "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n" +
		"64 bytes from 10.0.0.1: icmp_req=1 ttl=64 time=0.8 ms\n" +
		"64 bytes from 10.0.0.1: icmp_req=2 ttl=64 time=0.9 ms\n"

	analysis, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(analysis.Observations) != 2 {
		t.Errorf("Observations = %d, want 2", len(analysis.Observations))
	}
}

func TestParseSkipsSummaryBlock(t *testing.T) {
	log := "PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.\n" +
		"64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=0.8 ms\n" +
		"\n" +
		"--- 10.0.0.1 ping statistics ---\n" +
		"1 packets transmitted, 1 received, 0% packet loss, time 0ms\n" +
		"rtt min/avg/max/mdev = 0.800/0.800/0.800/0.000 ms\n"

	analysis, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(analysis.Observations) != 1 {
		t.Errorf("Observations = %d, want 1", len(analysis.Observations))
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile("does-not-exist.log"); err == nil {
		t.Fatal("ParseFile() on a missing file should return an error")
	} else if errors.Is(err, ErrNoData) {
		t.Fatal("a read failure must be distinct from ErrNoData")
	}
}

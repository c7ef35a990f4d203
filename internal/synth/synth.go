// Package synth generates realistic ping log fixtures: a fleet of fake
// devices with per-device latency patterns, packet loss and -D style
// epoch timestamps, written in the exact format the parser consumes.
package synth

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ping-tool/internal/models"
)

// Latency patterns a device can follow over the generated period.
const (
	PatternStable     = "stable"
	PatternIncreasing = "increasing"
	PatternDecreasing = "decreasing"
	PatternSpiky      = "spiky"
	PatternProblem    = "problem"
)

// Device is one synthetic target.
type Device struct {
	Type    string
	Name    string
	IP      string
	Pattern string
}

// FileResult summarizes one generated log file.
type FileResult struct {
	Name        string
	IP          string
	Pattern     string
	Filename    string
	Packets     int
	Received    int
	LossPercent float64
	Min         float64
	Avg         float64
	Max         float64
}

// FleetOptions controls GenerateFleet.
type FleetOptions struct {
	OutputDir      string
	Hours          int
	AccessPoints   int
	Switches       int
	Gateways       int
	VoIPPhones     int
	Servers        int
	DNSServices    int
	ProblemDevices int
}

// FileOptions controls a single generated log.
type FileOptions struct {
	Hours       int
	AvgInterval float64 // seconds between pings, 30 when zero
	LossProb    float64 // probability a reply is dropped
	Start       time.Time
}

const maxPings = 10000

// Generator produces synthetic ping data from an injected random source,
// so tests can pin a seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded with the given value.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

var (
	// Name pools per device type, matching the fleet naming scheme:
	// animals for APs, celestial bodies for switches, mountains for
	// gateways, cities for VoIP phones.
	animals = []string{"antelope", "badger", "cheetah", "dolphin", "elephant", "falcon",
		"giraffe", "hippo", "iguana", "jaguar", "kangaroo", "lemur", "mongoose",
		"narwhal", "octopus", "penguin", "quail", "raccoon", "snake", "tiger",
		"unicorn", "vulture", "walrus", "xerus", "yak", "zebra"}
	celestial = []string{"mercury", "venus", "earth", "mars", "jupiter", "saturn",
		"uranus", "neptune", "pluto", "sirius", "vega", "polaris", "antares",
		"betelgeuse", "rigel", "arcturus", "aldebaran"}
	mountains = []string{"everest", "k2", "kilimanjaro", "denali", "matterhorn", "fuji",
		"rainier", "whitney", "mckinley", "aconcagua", "elbrus", "blanc", "olympus",
		"hood", "shasta", "pike"}
	cities = []string{"tokyo", "paris", "london", "newyork", "sydney", "berlin",
		"rome", "madrid", "moscow", "beijing", "cairo", "dubai", "toronto",
		"chicago", "miami", "seattle", "boston", "austin"}

	domainPrefixes  = []string{"server", "api", "cdn", "app", "mail", "web", "db", "cache", "static", "media"}
	domainCompanies = []string{"acme", "globex", "initech", "umbrella", "stark", "wayne", "aperture", "cyberdyne", "oscorp"}
	domainTLDs      = []string{".com", ".net", ".org", ".io", ".co", ".cloud", ".tech"}

	dnsNames     = []string{"google-dns", "cloudflare-dns", "opendns", "quad9", "comodo-dns", "norton-dns"}
	dnsAddresses = []string{"8.8.8.8", "1.1.1.1", "9.9.9.9", "208.67.222.222", "64.6.64.6"}
)

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// RandomIP returns a random IPv4 address, private in 192.168.0.0/16 or a
// public one avoiding the reserved first octets.
func (g *Generator) RandomIP(private bool) string {
	if private {
		return fmt.Sprintf("192.168.%d.%d", g.rng.Intn(256), 1+g.rng.Intn(254))
	}
	reserved := map[int]bool{10: true, 127: true, 169: true, 172: true, 192: true, 198: true, 203: true}
	first := 1 + g.rng.Intn(223)
	for reserved[first] {
		first = 1 + g.rng.Intn(223)
	}
	return fmt.Sprintf("%d.%d.%d.%d", first, g.rng.Intn(256), g.rng.Intn(256), 1+g.rng.Intn(254))
}

func (g *Generator) randomDomain() string {
	return g.pick(domainPrefixes) + "." + g.pick(domainCompanies) + g.pick(domainTLDs)
}

// NewDevice creates a named device of the given type with a fitting
// address.
func (g *Generator) NewDevice(deviceType string) Device {
	d := Device{Type: deviceType}
	switch deviceType {
	case "access_point":
		d.Name = "AP-" + capitalize(g.pick(animals))
		d.IP = g.RandomIP(true)
	case "switch":
		d.Name = "SW-" + capitalize(g.pick(celestial))
		d.IP = g.RandomIP(true)
	case "gateway":
		d.Name = "GW-" + capitalize(g.pick(mountains))
		d.IP = g.RandomIP(true)
	case "voip_phone":
		d.Name = "VOIP-" + capitalize(g.pick(cities))
		d.IP = g.RandomIP(true)
	case "server":
		d.Name = g.randomDomain()
		d.IP = g.RandomIP(g.rng.Float64() < 0.7)
	case "dns_service":
		d.Name = g.pick(dnsNames)
		d.IP = g.pick(dnsAddresses)
	default:
		d.Name = fmt.Sprintf("Device-%d", 1+g.rng.Intn(999))
		d.IP = g.RandomIP(g.rng.Float64() < 0.5)
	}
	return d
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// baseLatency picks a plausible round-trip baseline for an address:
// sub-millisecond for private ranges, higher for public DNS and the
// open internet.
func (g *Generator) baseLatency(ip string) float64 {
	switch {
	case strings.HasPrefix(ip, "192.168.") || strings.HasPrefix(ip, "10."):
		return 0.1 + g.rng.Float64()*0.8
	case hasAnyPrefix(ip, "8.8", "1.1", "9.9", "208.67", "64.6"):
		return 6.0 + g.rng.Float64()*9.0
	default:
		return 5.0 + g.rng.Float64()*25.0
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// applyPattern shapes the baseline latency by pattern and progress
// through the generated period, with gaussian jitter.
func (g *Generator) applyPattern(base float64, pattern string, progress float64) float64 {
	jitter := g.rng.NormFloat64() * base * 0.1

	var value float64
	switch pattern {
	case PatternIncreasing:
		value = base*(1+2*progress) + jitter
	case PatternDecreasing:
		value = base*(3-2*progress) + jitter
	case PatternSpiky:
		if g.rng.Float64() < 0.1 {
			return base*(5+g.rng.Float64()*5) + jitter
		}
		value = base + jitter
	case PatternProblem:
		switch {
		case progress < 0.3:
			value = base + jitter
		case progress < 0.6:
			value = base*(1+10*(progress-0.3)) + jitter
		default:
			return base*(20+g.rng.Float64()*30) + jitter
		}
	default: // stable
		value = base + jitter
	}
	return math.Max(0.1, value)
}

// WriteHeader writes the PING header line.
func WriteHeader(w io.Writer, name, ip string) {
	fmt.Fprintf(w, "PING %s (%s) 56(84) bytes of data.\n", name, ip)
}

// WriteReply writes one reply line, with the -D epoch prefix when
// withTimestamp is set.
func WriteReply(w io.Writer, ip string, obs models.Observation, withTimestamp bool) {
	if withTimestamp {
		fmt.Fprintf(w, "[%.6f] ", obs.Timestamp)
	}
	fmt.Fprintf(w, "64 bytes from %s: icmp_seq=%d ttl=64 time=%.3f ms\n", ip, obs.Seq, obs.Latency)
}

// WriteSummary writes the trailing statistics block the way ping does.
func WriteSummary(w io.Writer, name string, transmitted, received int, min, avg, max float64, elapsedMs int) {
	loss := 0.0
	if transmitted > 0 {
		loss = float64(transmitted-received) / float64(transmitted) * 100
	}
	fmt.Fprintf(w, "\n--- %s ping statistics ---\n", name)
	fmt.Fprintf(w, "%d packets transmitted, %d received, %.1f%% packet loss, time %dms\n",
		transmitted, received, loss, elapsedMs)
	fmt.Fprintf(w, "rtt min/avg/max/mdev = %.3f/%.3f/%.3f/%.3f ms\n", min, avg, max, (max-min)/4)
}

// WriteLog generates one complete log for a device and reports what was
// written.
func (g *Generator) WriteLog(w io.Writer, dev Device, opts FileOptions) FileResult {
	if opts.Hours <= 0 {
		opts.Hours = 24
	}
	if opts.AvgInterval <= 0 {
		opts.AvgInterval = 30
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now().Add(-time.Duration(opts.Hours) * time.Hour)
	}

	interval := opts.AvgInterval
	if approx := float64(opts.Hours*3600) / interval; approx > maxPings {
		interval = float64(opts.Hours*3600) / maxPings
	}

	base := g.baseLatency(dev.IP)
	end := float64(start.Unix()) + float64(opts.Hours*3600)
	ts := float64(start.Unix())

	var timestamps []float64
	for ts < end && len(timestamps) < maxPings {
		timestamps = append(timestamps, ts)
		step := g.rng.NormFloat64()*interval*0.2 + interval
		if step < 1 {
			step = 1
		}
		ts += step
	}

	WriteHeader(w, dev.Name, dev.IP)

	res := FileResult{Name: dev.Name, IP: dev.IP, Pattern: dev.Pattern, Min: math.Inf(1)}
	var sum float64
	for i, stamp := range timestamps {
		res.Packets++
		if g.rng.Float64() < opts.LossProb {
			continue
		}
		progress := float64(i) / float64(len(timestamps))
		latency := g.applyPattern(base, dev.Pattern, progress)
		latency = math.Round(latency*1000) / 1000 // what the log carries

		WriteReply(w, dev.IP, models.Observation{
			Seq:       i + 1,
			Timestamp: stamp,
			Latency:   latency,
		}, true)

		res.Received++
		res.Min = math.Min(res.Min, latency)
		res.Max = math.Max(res.Max, latency)
		sum += latency
	}

	if res.Received > 0 {
		res.Avg = sum / float64(res.Received)
		res.LossPercent = float64(res.Packets-res.Received) / float64(res.Packets) * 100
		WriteSummary(w, dev.Name, res.Packets, res.Received, res.Min, res.Avg, res.Max, opts.Hours*3600*1000)
	} else {
		res.Min = 0
	}
	return res
}

// GenerateFleet creates log files for a whole device fleet plus a
// summary.txt, and returns the per-file results sorted by max latency.
func (g *Generator) GenerateFleet(opts FleetOptions) ([]FileResult, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var devices []Device
	add := func(deviceType string, count int) {
		for i := 0; i < count; i++ {
			devices = append(devices, g.NewDevice(deviceType))
		}
	}
	add("access_point", opts.AccessPoints)
	add("switch", opts.Switches)
	add("gateway", opts.Gateways)
	add("voip_phone", opts.VoIPPhones)
	add("server", opts.Servers)
	add("dns_service", opts.DNSServices)

	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices to generate")
	}

	problem := make(map[int]bool)
	for _, idx := range g.rng.Perm(len(devices))[:minInt(opts.ProblemDevices, len(devices))] {
		problem[idx] = true
	}

	normalPatterns := []string{PatternStable, PatternIncreasing, PatternDecreasing, PatternSpiky}
	for i := range devices {
		if problem[i] {
			devices[i].Pattern = PatternProblem
		} else {
			devices[i].Pattern = normalPatterns[g.rng.Intn(len(normalPatterns))]
		}
	}

	var results []FileResult
	for i, dev := range devices {
		filename := filepath.Join(opts.OutputDir, fmt.Sprintf("%s-%s.log", dev.Type, dev.Name))
		file, err := os.Create(filename)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", filename, err)
		}

		lossProb := 0.01
		if problem[i] {
			lossProb = 0.15
		}
		res := g.WriteLog(file, dev, FileOptions{Hours: opts.Hours, LossProb: lossProb})
		res.Filename = filename
		if err := file.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", filename, err)
		}
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Max > results[j].Max })

	if err := g.writeFleetSummary(opts, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) writeFleetSummary(opts FleetOptions, results []FileResult) error {
	path := filepath.Join(opts.OutputDir, "summary.txt")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "=== Ping Test Summary ===\n\n")
	fmt.Fprintf(file, "Generated on: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Time period: %d hours\n", opts.Hours)
	fmt.Fprintf(file, "Total devices: %d\n\n", len(results))

	fmt.Fprintf(file, "%-25s %-15s %-10s %-10s %-10s %-10s %-10s %s\n",
		"Device", "IP", "Packets", "Loss %", "Min (ms)", "Avg (ms)", "Max (ms)", "Pattern")
	fmt.Fprintln(file, strings.Repeat("-", 100))
	for _, r := range results {
		fmt.Fprintf(file, "%-25s %-15s %-10d %-10.1f %-10.2f %-10.2f %-10.2f %s\n",
			r.Name, r.IP, r.Packets, r.LossPercent, r.Min, r.Avg, r.Max, r.Pattern)
	}

	fmt.Fprintf(file, "\n=== Problem Devices ===\n\n")
	found := false
	for _, r := range results {
		if r.Pattern == PatternProblem {
			found = true
			fmt.Fprintf(file, "* %s (%s)\n", r.Name, r.IP)
			fmt.Fprintf(file, "  - Max response time: %.2f ms\n", r.Max)
			fmt.Fprintf(file, "  - Packet loss: %.1f%%\n\n", r.LossPercent)
		}
	}
	if !found {
		fmt.Fprintln(file, "No problem devices identified.")
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

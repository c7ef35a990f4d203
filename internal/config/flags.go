package config

import (
	"flag"

	"github.com/joho/godotenv"
)

// ParseFlags parses command-line flags and returns a Config. Defaults
// for a few settings can come from the environment or a .env file
// (PINGTOOL_WORKERS, PINGTOOL_DB, PINGTOOL_PATTERN).
func ParseFlags() Config {
	godotenv.Load() // .env is optional

	var cfg Config

	flag.StringVar(&cfg.Pattern, "p", envString("PINGTOOL_PATTERN", ""), "File pattern to analyze (default: *ping*.txt and *ping*.log)")
	flag.StringVar(&cfg.OutputPath, "o", "", "Write the text report to a file instead of stdout")
	flag.StringVar(&cfg.MarkdownPath, "markdown", "", "Write a markdown report to this path")
	flag.StringVar(&cfg.PDFPath, "pdf", "", "Write a PDF report to this path")
	flag.StringVar(&cfg.ChartsDir, "charts", "", "Write SVG latency charts into this directory")
	flag.IntVar(&cfg.Workers, "workers", envInt("PINGTOOL_WORKERS", 4), "Concurrent file analyzers")

	flag.StringVar(&cfg.DatabasePath, "db", envString("PINGTOOL_DB", ""), "Record analysis summaries in this SQLite database")
	flag.BoolVar(&cfg.ShowHistory, "history", false, "Print recent analysis history from the database and exit")
	flag.IntVar(&cfg.HistoryLimit, "history-limit", 20, "Number of history rows to print")

	flag.StringVar(&cfg.PingTarget, "ping", "", "Start a background ping to this target")
	flag.IntVar(&cfg.PingCount, "count", 0, "Number of pings to send (0 = unlimited)")
	flag.Float64Var(&cfg.PingInterval, "interval", 0, "Seconds between pings (0 = ping default)")
	flag.StringVar(&cfg.PingOutput, "ping-output", "", "Output file for the started ping")
	flag.BoolVar(&cfg.NoTimestamp, "no-timestamp", false, "Do not pass -D when starting a ping")

	flag.BoolVar(&cfg.Generate, "generate", false, "Generate synthetic ping log fixtures instead of analyzing")
	flag.StringVar(&cfg.GenerateDir, "generate-dir", "test_ping_files", "Directory for generated fixtures")
	flag.IntVar(&cfg.GenerateHours, "generate-hours", 24, "Hours of data per generated file")
	flag.IntVar(&cfg.AccessPoints, "access-points", 5, "Access points to simulate")
	flag.IntVar(&cfg.Switches, "switches", 3, "Switches to simulate")
	flag.IntVar(&cfg.Gateways, "gateways", 2, "Gateways to simulate")
	flag.IntVar(&cfg.VoIPPhones, "voip-phones", 8, "VoIP phones to simulate")
	flag.IntVar(&cfg.Servers, "servers", 4, "Servers to simulate")
	flag.IntVar(&cfg.DNSServices, "dns-services", 2, "DNS services to simulate")
	flag.IntVar(&cfg.ProblemDevices, "problem-devices", 1, "Devices with problems to simulate")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Random seed for fixture generation (0 = time-based)")

	flag.Parse()
	cfg.Files = flag.Args()

	return cfg
}

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"ping-tool/internal/analyzer"
	"ping-tool/internal/config"
	"ping-tool/internal/database"
	"ping-tool/internal/models"
	"ping-tool/internal/pinger"
	"ping-tool/internal/report"
	"ping-tool/internal/synth"
)

func main() {
	// Parse configuration
	cfg := config.ParseFlags()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Generate {
		runGenerate(cfg)
		return
	}

	// Initialize the optional history index
	var db *database.DB
	if cfg.DatabasePath != "" {
		var err error
		db, err = database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize database schema: %v", err)
		}
	}

	if cfg.ShowHistory {
		printHistory(db, cfg.HistoryLimit)
		return
	}

	if cfg.PingTarget != "" {
		logPath, pid, err := pinger.Start(cfg.PingTarget, pinger.Options{
			Count:      cfg.PingCount,
			Interval:   cfg.PingInterval,
			OutputFile: cfg.PingOutput,
			Timestamp:  !cfg.NoTimestamp,
		})
		if err != nil {
			log.Fatalf("Failed to start ping: %v", err)
		}
		log.Printf("Ping to %s started with PID %d, output in %s", cfg.PingTarget, pid, logPath)
		log.Printf("To stop it, use: kill %d", pid)

		// Starting a capture without inputs to analyze is a complete run.
		if len(cfg.Files) == 0 && cfg.Pattern == "" {
			return
		}
	}

	files, err := analyzer.Discover(cfg.Files, cfg.Pattern)
	if err != nil {
		log.Fatalf("Failed to resolve input files: %v", err)
	}
	if len(files) == 0 {
		log.Fatal("No ping files found to analyze")
	}
	log.Printf("Found %d ping files to analyze", len(files))

	analyses := analyzer.New(cfg.Workers).Run(files)
	summary := models.NewSummary(analyses)

	if db != nil {
		for _, a := range analyses {
			if err := db.SaveAnalysis(a); err != nil {
				log.Printf("Failed to record %s in history: %v", a.Filename, err)
			}
		}
	}

	// The text report goes to stdout unless a path was given; the other
	// formats are opt-in.
	if cfg.OutputPath == "" {
		report.WriteText(os.Stdout, summary)
	}
	report.NewGenerator(report.Options{
		TextPath:     cfg.OutputPath,
		MarkdownPath: cfg.MarkdownPath,
		PDFPath:      cfg.PDFPath,
		ChartsDir:    cfg.ChartsDir,
	}).Generate(summary)
}

func runGenerate(cfg config.Config) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results, err := synth.New(seed).GenerateFleet(synth.FleetOptions{
		OutputDir:      cfg.GenerateDir,
		Hours:          cfg.GenerateHours,
		AccessPoints:   cfg.AccessPoints,
		Switches:       cfg.Switches,
		Gateways:       cfg.Gateways,
		VoIPPhones:     cfg.VoIPPhones,
		Servers:        cfg.Servers,
		DNSServices:    cfg.DNSServices,
		ProblemDevices: cfg.ProblemDevices,
	})
	if err != nil {
		log.Fatalf("Failed to generate fixtures: %v", err)
	}
	log.Printf("Generated %d ping files and summary report in %s", len(results), cfg.GenerateDir)
}

func printHistory(db *database.DB, limit int) {
	records, err := db.GetRecent(limit)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No analysis history recorded yet.")
		return
	}

	fmt.Printf("%-20s %-30s %-18s %8s %8s %8s %8s %8s\n",
		"Analyzed", "File", "Target", "Pings", "Loss %", "Avg ms", "Missing", "Abnorm")
	for _, r := range records {
		fmt.Printf("%-20s %-30s %-18s %8d %8.1f %8.2f %8d %8d\n",
			r.AnalyzedAt, r.Filename, r.Target, r.TotalPings, r.PacketLoss, r.AvgRTT,
			r.MissingCount, r.AbnormalCount)
	}
}

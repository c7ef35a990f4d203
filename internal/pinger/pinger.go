// Package pinger starts a system ping writing its output to a log file
// that the parser can analyze later. Timeout and cadence semantics live
// in the ping binary, not here.
package pinger

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"
)

// Options controls a capture.
type Options struct {
	Count      int     // pings to send, 0 for unlimited
	Interval   float64 // seconds between pings, 0 for the ping default
	OutputFile string  // log path, derived from the target when empty
	Timestamp  bool    // pass -D for epoch timestamps (not on Windows)
}

var unsafeChars = regexp.MustCompile(`[:/\\\s]`)

// LogName derives a log filename from a target and the current time.
func LogName(target string, now time.Time) string {
	clean := unsafeChars.ReplaceAllString(target, "-")
	return fmt.Sprintf("ping-%s-%s.log", clean, now.Format("20060102-150405"))
}

// Start launches ping against the target in the background, redirecting
// its output to the log file. It returns the log path and the process
// PID; the process keeps running after this program exits.
func Start(target string, opts Options) (string, int, error) {
	logPath := opts.OutputFile
	if logPath == "" {
		logPath = LogName(target, time.Now())
	}

	args := buildArgs(target, opts)

	file, err := os.Create(logPath)
	if err != nil {
		return "", 0, fmt.Errorf("create %s: %w", logPath, err)
	}
	defer file.Close()

	cmd := exec.Command("ping", args...)
	cmd.Stdout = file
	cmd.Stderr = file

	if err := cmd.Start(); err != nil {
		os.Remove(logPath)
		return "", 0, fmt.Errorf("start ping: %w", err)
	}

	// Detach: the capture is expected to outlive this run.
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return "", 0, fmt.Errorf("release ping process: %w", err)
	}
	return logPath, pid, nil
}

// buildArgs assembles platform-specific ping arguments.
func buildArgs(target string, opts Options) []string {
	var args []string
	if runtime.GOOS == "windows" {
		if opts.Count > 0 {
			args = append(args, "-n", strconv.Itoa(opts.Count))
		} else {
			args = append(args, "-t")
		}
	} else {
		if opts.Timestamp {
			args = append(args, "-D")
		}
		if opts.Count > 0 {
			args = append(args, "-c", strconv.Itoa(opts.Count))
		}
		if opts.Interval > 0 {
			args = append(args, "-i", strconv.FormatFloat(opts.Interval, 'f', -1, 64))
		}
	}
	return append(args, target)
}

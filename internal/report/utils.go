package report

import "strings"

// sanitizeFilename replaces characters that are unsafe or ambiguous in
// generated output filenames.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}

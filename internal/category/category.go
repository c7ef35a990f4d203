// Package category infers a device category from a ping log filename, so
// reports can group access points, switches, gateways and the rest.
package category

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	MAC      = "mac"
	AP       = "ap"
	Gateway  = "gw"
	Switch   = "switch"
	Firewall = "fw"
	Host     = "host"
	IP       = "ip"
	Other    = "other"
)

// All lists the categories in report order.
var All = []string{MAC, AP, Gateway, Switch, Firewall, Host, IP, Other}

var (
	bareHexPattern = regexp.MustCompile(`[0-9a-fA-F]{12}`)
	nonAlnum       = regexp.MustCompile(`[^a-zA-Z0-9]`)
	ipv4Pattern    = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

	// Delimited MAC formats: colon/hyphen pairs, Cisco dotted quads,
	// underscore pairs, and the occasional short last octet.
	macPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([0-9a-f]{2}[:-]){5}[0-9a-f]{2}`),
		regexp.MustCompile(`(?i)([0-9a-f]{4}\.){2}[0-9a-f]{4}`),
		regexp.MustCompile(`(?i)([0-9a-f]{2}[:-]){5}[0-9a-f]{1,2}`),
		regexp.MustCompile(`(?i)([0-9a-f]{2}_){5}[0-9a-f]{2}`),
	}
)

type deviceMatcher struct {
	category string
	pattern  *regexp.Regexp
}

var deviceMatchers = buildDeviceMatchers()

func buildDeviceMatchers() []deviceMatcher {
	// Identifier order matters: earlier categories win.
	types := []struct {
		category    string
		identifiers []string
	}{
		{AP, []string{"ap", "aps", "access-point", "accesspoint", "access_point"}},
		{Gateway, []string{"gw", "gateway", "gtw"}},
		{Switch, []string{"switch", "sw"}},
		{Firewall, []string{"fw", "firewall"}},
		{Host, []string{"host", "device", "client"}},
	}

	matchers := make([]deviceMatcher, 0, len(types))
	for _, t := range types {
		alts := make([]string, len(t.identifiers))
		for i, id := range t.identifiers {
			alts[i] = regexp.QuoteMeta(id)
		}
		group := strings.Join(alts, "|")
		// Whole word, delimited, or anchored at either end with a
		// delimiter; underscores defeat \b so they are matched
		// explicitly.
		expr := fmt.Sprintf(`\b(?:%[1]s)\b|[_\-.](?:%[1]s)[_\-.]|^(?:%[1]s)[_\-.]|[_\-.](?:%[1]s)$`, group)
		matchers = append(matchers, deviceMatcher{t.category, regexp.MustCompile(expr)})
	}
	return matchers
}

// HasMACAddress reports whether the filename contains a MAC address in
// any common format and case.
func HasMACAddress(name string) bool {
	if bareHexPattern.MatchString(nonAlnum.ReplaceAllString(name, "")) {
		return true
	}
	for _, p := range macPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// Classify returns the device category for a ping log path, based only
// on its base filename.
func Classify(path string) string {
	name := filepath.Base(path)

	if HasMACAddress(name) {
		return MAC
	}

	lower := strings.ToLower(name)
	for _, m := range deviceMatchers {
		if m.pattern.MatchString(lower) {
			return m.category
		}
	}

	if ipv4Pattern.MatchString(name) {
		return IP
	}
	return Other
}

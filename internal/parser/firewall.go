package parser

import (
	"regexp"
	"strings"
)

// FirewallParser extracts blocked addresses from firewall logs
type FirewallParser struct {
	reBlocked *regexp.Regexp
}

// NewFirewallParser creates a new firewall log parser
func NewFirewallParser() *FirewallParser {
	return &FirewallParser{
		// 2025-01-01 10:00:00 BLOCKED IP: 10.0.0.5 reason=policy
		reBlocked: regexp.MustCompile(`BLOCKED IP: ` + dottedQuad),
	}
}

// Parse implements the Parser interface
func (p *FirewallParser) Parse(line string) *FirewallEvent {
	if !strings.Contains(line, "BLOCKED IP:") {
		return nil
	}

	matches := p.reBlocked.FindStringSubmatch(line)
	if len(matches) < 2 {
		return nil
	}
	return &FirewallEvent{BlockedIP: matches[1]}
}

package parser

import (
	"regexp"
	"strings"
)

// AuthParser extracts failed password attempts from authentication logs
type AuthParser struct {
	reFailed *regexp.Regexp
}

// NewAuthParser creates a new authentication log parser
func NewAuthParser() *AuthParser {
	return &AuthParser{
		// Failed password for root from 203.0.113.9 port 22 ssh2
		reFailed: regexp.MustCompile(`Failed password for .* from ` + dottedQuad),
	}
}

// Parse implements the Parser interface
func (p *AuthParser) Parse(line string) *AuthEvent {
	if !strings.Contains(line, "Failed password for") {
		return nil
	}

	matches := p.reFailed.FindStringSubmatch(line)
	if len(matches) < 2 {
		return nil
	}
	return &AuthEvent{SourceIP: matches[1]}
}

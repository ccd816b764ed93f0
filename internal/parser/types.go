package parser

// AuthEvent is a failed password attempt attributed to a source address
type AuthEvent struct {
	SourceIP string
}

// FirewallEvent is a firewall block of an address
type FirewallEvent struct {
	BlockedIP string
}

// IDSEvent is an intrusion-detection alert line, trimmed
type IDSEvent struct {
	RawText string
}

// Parser maps one log line to zero or one typed event
type Parser[E any] interface {
	Parse(line string) *E
}

// dottedQuad matches four digit groups; octet range is not validated
const dottedQuad = `(\d+\.\d+\.\d+\.\d+)`

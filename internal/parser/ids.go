package parser

import "strings"

// alertMarker is the case-sensitive token that makes a line an IDS alert
const alertMarker = "ALERT"

// IDSParser keeps whole alert lines from intrusion-detection logs
type IDSParser struct{}

func NewIDSParser() *IDSParser {
	return &IDSParser{}
}

// Parse implements the Parser interface
func (p *IDSParser) Parse(line string) *IDSEvent {
	if !strings.Contains(line, alertMarker) {
		return nil
	}
	return &IDSEvent{RawText: strings.TrimSpace(line)}
}

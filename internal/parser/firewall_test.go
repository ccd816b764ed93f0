package parser

import "testing"

func TestFirewallParser_Parse_Blocked(t *testing.T) {
	parser := NewFirewallParser()

	evt := parser.Parse("2025-01-01 10:00:00 BLOCKED IP: 10.0.0.5 reason=policy")
	if evt == nil {
		t.Fatal("Expected parsed event, got nil")
	}
	if evt.BlockedIP != "10.0.0.5" {
		t.Errorf("Expected IP '10.0.0.5', got '%s'", evt.BlockedIP)
	}
}

func TestFirewallParser_Parse_Invalid(t *testing.T) {
	parser := NewFirewallParser()

	lines := []string{
		"ALLOWED IP: 10.0.0.5",
		"BLOCKED IP:10.0.0.5",
		"BLOCKED IP:  10.0.0.5",
		"blocked ip: 10.0.0.5",
		"BLOCKED IP: unknown",
	}
	for _, line := range lines {
		if evt := parser.Parse(line); evt != nil {
			t.Errorf("Expected nil for %q, got %+v", line, evt)
		}
	}
}

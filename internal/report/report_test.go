package report

import (
	"encoding/json"
	"secreport/internal/detect"
	"secreport/internal/types"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)

func sampleReport() SecurityReport {
	return SecurityReport{
		BruteForce:  Ok(detect.BruteForceSummary{"203.0.113.9": 6}),
		BlockedIPs:  Ok(detect.NewBlockedIPSet("203.0.113.9")),
		IDSAlerts:   Ok(detect.AlertList{"ALERT: suspicious packet"}),
		GeneratedAt: fixedTime,
	}
}

func TestSecurityReport_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := `{"Brute Force Attempts":{"203.0.113.9":6},"Blocked IPs":["203.0.113.9"],"IDS Alerts":["ALERT: suspicious packet"],"Timestamp":"2025-01-02 03:04:05"}`
	if string(data) != expected {
		t.Errorf("Unexpected document:\n got: %s\nwant: %s", data, expected)
	}
}

func TestSecurityReport_FailureInBand(t *testing.T) {
	rep := SecurityReport{
		BruteForce:  Fail[detect.BruteForceSummary](NotFoundFailure(types.CategoryAuth)),
		BlockedIPs:  Ok(detect.NewBlockedIPSet()),
		IDSAlerts:   Fail[detect.AlertList](UnexpectedFailure("permission denied")),
		GeneratedAt: fixedTime,
	}

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := `{"Brute Force Attempts":{"error":"Authentication log file not found"},"Blocked IPs":[],"IDS Alerts":{"error":"Unexpected error occurred: permission denied"},"Timestamp":"2025-01-02 03:04:05"}`
	if string(data) != expected {
		t.Errorf("Unexpected document:\n got: %s\nwant: %s", data, expected)
	}
	if rep.Failures() != 2 {
		t.Errorf("Expected 2 failures, got %d", rep.Failures())
	}
}

func TestSecurityReport_RoundTrip(t *testing.T) {
	original := sampleReport()
	original.BlockedIPs = Fail[detect.BlockedIPSet](NotFoundFailure(types.CategoryFirewall))

	text, err := Indented(original)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "\n    \"Brute Force Attempts\": {") {
		t.Errorf("Expected 4-space indented document, got:\n%s", text)
	}

	back, err := Decode(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !back.BruteForce.IsOk() || back.BruteForce.Value["203.0.113.9"] != 6 || len(back.BruteForce.Value) != 1 {
		t.Errorf("Brute force mismatch: %+v", back.BruteForce)
	}
	if back.BlockedIPs.IsOk() {
		t.Fatal("Expected blocked IPs failure to survive round trip")
	}
	if back.BlockedIPs.Failure.Kind != NotFound || back.BlockedIPs.Failure.Message != "Firewall log file not found" {
		t.Errorf("Unexpected failure after round trip: %+v", back.BlockedIPs.Failure)
	}
	if len(back.IDSAlerts.Value) != 1 || back.IDSAlerts.Value[0] != "ALERT: suspicious packet" {
		t.Errorf("IDS alerts mismatch: %+v", back.IDSAlerts)
	}
	if !back.GeneratedAt.Equal(original.GeneratedAt) {
		t.Errorf("Timestamp mismatch: %v vs %v", back.GeneratedAt, original.GeneratedAt)
	}
}

func TestSecurityReport_UnmarshalMissingField(t *testing.T) {
	var rep SecurityReport
	err := json.Unmarshal([]byte(`{"Brute Force Attempts":{},"Blocked IPs":[],"Timestamp":"2025-01-02 03:04:05"}`), &rep)
	if err == nil {
		t.Fatal("Expected error for missing IDS Alerts field")
	}
}

func TestResult_UnexpectedKindOnReadBack(t *testing.T) {
	var r Result[detect.AlertList]
	if err := json.Unmarshal([]byte(`{"error":"Unexpected error occurred: boom"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.IsOk() || r.Failure.Kind != Unexpected {
		t.Errorf("Expected unexpected failure, got %+v", r)
	}
}

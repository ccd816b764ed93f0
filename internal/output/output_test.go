package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"secreport/internal/detect"
	"secreport/internal/report"
	"secreport/internal/types"
	"strings"
	"testing"
	"time"
)

func sampleReport() report.SecurityReport {
	return report.SecurityReport{
		BruteForce:  report.Ok(detect.BruteForceSummary{"203.0.113.9": 6}),
		BlockedIPs:  report.Fail[detect.BlockedIPSet](report.NotFoundFailure(types.CategoryFirewall)),
		IDSAlerts:   report.Ok(detect.AlertList{"ALERT: suspicious packet", "ALERT: suspicious packet"}),
		GeneratedAt: time.Date(2025, 6, 7, 8, 9, 10, 0, time.Local),
	}
}

func TestJSONFile_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "security_report.json")
	sink := NewJSONFile(path)

	if err := sink.Write(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"Blocked IPs": {`+"\n"+`        "error": "Firewall log file not found"`) {
		t.Errorf("Expected in-band error payload, got:\n%s", data)
	}

	back, err := ReadJSONFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if back.BruteForce.Value["203.0.113.9"] != 6 {
		t.Errorf("Brute force mismatch: %+v", back.BruteForce)
	}
	if back.BlockedIPs.IsOk() || back.BlockedIPs.Failure.Kind != report.NotFound {
		t.Errorf("Expected NotFound failure, got %+v", back.BlockedIPs)
	}
	if len(back.IDSAlerts.Value) != 2 {
		t.Errorf("Expected duplicate alerts kept, got %v", back.IDSAlerts.Value)
	}
	if back.GeneratedAt.Format(report.TimestampLayout) != "2025-06-07 08:09:10" {
		t.Errorf("Unexpected timestamp: %v", back.GeneratedAt)
	}
}

func TestJSONFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	sink := NewJSONFile(path)

	first := sampleReport()
	second := sampleReport()
	second.IDSAlerts = report.Ok(detect.AlertList{})

	if err := sink.Write(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	if err := sink.Write(context.Background(), second); err != nil {
		t.Fatal(err)
	}

	back, err := ReadJSONFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.IDSAlerts.Value) != 0 {
		t.Errorf("Expected latest snapshot only, got %v", back.IDSAlerts.Value)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestJSONFile_MissingDirectory(t *testing.T) {
	sink := NewJSONFile(filepath.Join(t.TempDir(), "missing", "report.json"))
	if err := sink.Write(context.Background(), sampleReport()); err == nil {
		t.Fatal("Expected error writing into a missing directory")
	}
}

func TestConsole_Show(t *testing.T) {
	var buf bytes.Buffer
	rep := sampleReport()
	rep.IDSAlerts = report.Ok(detect.AlertList{"ALERT: bell\x07 in payload"})

	if err := NewConsole(&buf).Show(rep); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "--- Security Incident Report ---\n\n{") {
		t.Errorf("Unexpected banner: %q", out)
	}
	if strings.ContainsRune(out, '\x07') || !strings.Contains(out, `bell\u0007 in payload`) {
		t.Errorf("Expected control characters escaped by the encoder, got %q", out)
	}
}

type failingSink struct{ name string }

func (f failingSink) Destination() string { return f.name }
func (f failingSink) Write(context.Context, report.SecurityReport) error {
	return errors.New(f.name + " unavailable")
}

func TestMulti_AttemptsEverySink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	m := NewMulti(failingSink{name: "state.db"}, NewJSONFile(path))

	err := m.Write(context.Background(), sampleReport())
	if err == nil || !strings.Contains(err.Error(), "state.db unavailable") {
		t.Fatalf("Expected joined error, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("JSON sink should still have written: %v", statErr)
	}
	if m.Destination() != "state.db, "+path {
		t.Errorf("Unexpected destination: %s", m.Destination())
	}
}

func TestMulti_OutcomesPerSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	m := NewMulti(NewJSONFile(path), failingSink{name: "state.db"})

	if len(m.Outcomes()) != 0 {
		t.Fatal("Expected no outcomes before the first write")
	}

	err := m.Write(context.Background(), sampleReport())
	if err == nil || !strings.Contains(err.Error(), "state.db: state.db unavailable") {
		t.Fatalf("Expected error prefixed with its destination, got %v", err)
	}
	if strings.Contains(err.Error(), path) {
		t.Errorf("Successful sink must not appear in the error: %v", err)
	}

	outcomes := m.Outcomes()
	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Destination != path || outcomes[0].Err != nil {
		t.Errorf("Expected JSON sink to succeed, got %+v", outcomes[0])
	}
	if outcomes[1].Destination != "state.db" || outcomes[1].Err == nil {
		t.Errorf("Expected state sink to fail, got %+v", outcomes[1])
	}
}

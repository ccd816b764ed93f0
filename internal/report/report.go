package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"secreport/internal/detect"
	"time"
)

// TimestampLayout is the second-resolution format of the Timestamp field
const TimestampLayout = "2006-01-02 15:04:05"

// Document field names
const (
	FieldBruteForce = "Brute Force Attempts"
	FieldBlockedIPs = "Blocked IPs"
	FieldIDSAlerts  = "IDS Alerts"
	FieldTimestamp  = "Timestamp"
)

// SecurityReport is the snapshot of one run. It is built once by the
// Assembler and must not be modified afterwards.
type SecurityReport struct {
	BruteForce  Result[detect.BruteForceSummary]
	BlockedIPs  Result[detect.BlockedIPSet]
	IDSAlerts   Result[detect.AlertList]
	GeneratedAt time.Time
}

type document struct {
	BruteForce Result[detect.BruteForceSummary] `json:"Brute Force Attempts"`
	BlockedIPs Result[detect.BlockedIPSet]      `json:"Blocked IPs"`
	IDSAlerts  Result[detect.AlertList]         `json:"IDS Alerts"`
	Timestamp  string                           `json:"Timestamp"`
}

// Failures counts the failed categories
func (r SecurityReport) Failures() int {
	n := 0
	for _, ok := range []bool{r.BruteForce.IsOk(), r.BlockedIPs.IsOk(), r.IDSAlerts.IsOk()} {
		if !ok {
			n++
		}
	}
	return n
}

// MarshalJSON renders the persisted document shape
func (r SecurityReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		BruteForce: r.BruteForce,
		BlockedIPs: r.BlockedIPs,
		IDSAlerts:  r.IDSAlerts,
		Timestamp:  r.GeneratedAt.Format(TimestampLayout),
	})
}

// UnmarshalJSON reads a persisted document; all four fields are required
func (r *SecurityReport) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range []string{FieldBruteForce, FieldBlockedIPs, FieldIDSAlerts, FieldTimestamp} {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("report document missing %q", name)
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	ts, err := time.ParseInLocation(TimestampLayout, doc.Timestamp, time.Local)
	if err != nil {
		return fmt.Errorf("invalid report timestamp: %w", err)
	}

	*r = SecurityReport{
		BruteForce:  doc.BruteForce,
		BlockedIPs:  doc.BlockedIPs,
		IDSAlerts:   doc.IDSAlerts,
		GeneratedAt: ts,
	}
	return nil
}

// Encode writes the report as an indented document
func Encode(w io.Writer, r SecurityReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Decode reads one document from rd
func Decode(rd io.Reader) (SecurityReport, error) {
	var r SecurityReport
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return SecurityReport{}, fmt.Errorf("failed to decode report: %w", err)
	}
	return r, nil
}

// Indented returns the indented document as a string
func Indented(r SecurityReport) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package detect

import (
	"secreport/internal/ingest"
	"secreport/internal/parser"
)

// AlertList is the ordered list of IDS alert lines, duplicates kept
type AlertList []string

// Alerts collects IDS alerts in source order
type Alerts struct {
	list AlertList
}

func NewAlerts() *Alerts {
	return &Alerts{list: AlertList{}}
}

func (a *Alerts) Add(evt parser.IDSEvent, _ ingest.LogLine) {
	a.list = append(a.list, evt.RawText)
}

func (a *Alerts) Result() AlertList {
	return a.list
}

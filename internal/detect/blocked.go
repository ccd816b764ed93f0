package detect

import (
	"encoding/json"
	"secreport/internal/ingest"
	"secreport/internal/parser"
	"sort"
)

// BlockedIPSet is the set of unique blocked IPs
type BlockedIPSet map[string]struct{}

// NewBlockedIPSet builds a set from ips
func NewBlockedIPSet(ips ...string) BlockedIPSet {
	s := make(BlockedIPSet, len(ips))
	for _, ip := range ips {
		s[ip] = struct{}{}
	}
	return s
}

// Has reports membership
func (s BlockedIPSet) Has(ip string) bool {
	_, ok := s[ip]
	return ok
}

// Sorted returns the members in ascending string order
func (s BlockedIPSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ip := range s {
		out = append(out, ip)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the set as a sorted array
func (s BlockedIPSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads an array back into a set
func (s *BlockedIPSet) UnmarshalJSON(data []byte) error {
	var ips []string
	if err := json.Unmarshal(data, &ips); err != nil {
		return err
	}
	*s = NewBlockedIPSet(ips...)
	return nil
}

// Blocked collects the unique addresses blocked by the firewall
type Blocked struct {
	set BlockedIPSet
}

func NewBlocked() *Blocked {
	return &Blocked{set: NewBlockedIPSet()}
}

func (b *Blocked) Add(evt parser.FirewallEvent, _ ingest.LogLine) {
	b.set[evt.BlockedIP] = struct{}{}
}

func (b *Blocked) Result() BlockedIPSet {
	return b.set
}

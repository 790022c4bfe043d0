package vies

import (
	"regexp"
	"strings"
)

// Address holds the structured components decomposed from a free-text
// registry address.
type Address struct {
	Street     string `json:"street"`
	StreetNr   string `json:"street_nr"`
	Box        string `json:"box"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// AddressParser decomposes a raw registry address into components. It is
// an explicit strategy so the heuristic below can be swapped for a proper
// address-parsing backend without touching the validator's control flow.
type AddressParser interface {
	Parse(raw string) Address
}

var (
	streetNrRe = regexp.MustCompile(`^(.*?)[,\s]+(\d+[A-Za-z]?)$`)
	postalRe   = regexp.MustCompile(`^(\d{4,5})[,\s]+(.+)$`)
	boxRe      = regexp.MustCompile(`(?i)\b(?:box|bo[iî]te|bus)\b\D*(\d+)`)
)

// HeuristicParser is a best-effort line-based address decomposer tuned for
// the formats the registry returns for Benelux and neighbouring states.
// Irregular multi-line street addresses will mis-parse; lines that match
// no rule fold into the street rather than being dropped.
type HeuristicParser struct{}

func NewHeuristicParser() HeuristicParser {
	return HeuristicParser{}
}

func (HeuristicParser) Parse(raw string) Address {
	var addr Address

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return addr
	}

	// First line: street with an optional trailing house number.
	if m := streetNrRe.FindStringSubmatch(lines[0]); m != nil {
		addr.Street = strings.TrimRight(m[1], ",")
		addr.StreetNr = m[2]
	} else {
		addr.Street = lines[0]
	}

	// Last line: postal code followed by city.
	last := len(lines) - 1
	if last > 0 {
		if m := postalRe.FindStringSubmatch(lines[last]); m != nil {
			addr.PostalCode = m[1]
			addr.City = strings.TrimRight(m[2], ",")
		} else {
			addr.Street = addr.Street + " " + lines[last]
		}

		// Middle lines: box designations; anything else folds into the street.
		for _, line := range lines[1:last] {
			if m := boxRe.FindStringSubmatch(line); m != nil {
				addr.Box = m[1]
				continue
			}
			addr.Street = addr.Street + " " + line
		}
	}

	return addr
}

// Package view holds the two-axis view state and the pure functions that
// derive visibility, classification and grouping from it.
package view

import "fmt"

// Granularity selects whole-protein or domain-level display.
type Granularity uint8

const (
	GranularityDomain Granularity = iota
	GranularityProtein
)

func (g Granularity) String() string {
	if g == GranularityProtein {
		return "protein"
	}
	return "domain"
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Granularity) UnmarshalText(b []byte) error {
	v, err := ParseGranularity(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGranularity converts "domain" or "protein" into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "domain":
		return GranularityDomain, nil
	case "protein":
		return GranularityProtein, nil
	}
	return GranularityDomain, fmt.Errorf("invalid granularity %q: must be domain or protein", s)
}

// State is the complete view state. It is passed by value into every
// pipeline call.
type State struct {
	Granularity   Granularity `json:"granularity"`
	ShowPredicted bool        `json:"show_predicted"`
}

// Initial is the state every graph starts in.
func Initial() State {
	return State{Granularity: GranularityDomain, ShowPredicted: true}
}

// ToggleGranularity returns s with the granularity flipped.
func (s State) ToggleGranularity() State {
	if s.Granularity == GranularityDomain {
		s.Granularity = GranularityProtein
	} else {
		s.Granularity = GranularityDomain
	}
	return s
}

// TogglePredicted returns s with evidence visibility flipped.
func (s State) TogglePredicted() State {
	s.ShowPredicted = !s.ShowPredicted
	return s
}

// Key is the two-letter view name: p/v for predicted shown or validated
// only, then d/p for domain or protein granularity.
func (s State) Key() string {
	key := "v"
	if s.ShowPredicted {
		key = "p"
	}
	if s.Granularity == GranularityProtein {
		return key + "p"
	}
	return key + "d"
}

func (s State) String() string {
	return fmt.Sprintf("%s/predicted=%t", s.Granularity, s.ShowPredicted)
}

// ParseKey is the inverse of State.Key.
func ParseKey(key string) (State, error) {
	if len(key) != 2 {
		return State{}, fmt.Errorf("invalid view key %q", key)
	}
	var s State
	switch key[0] {
	case 'p':
		s.ShowPredicted = true
	case 'v':
	default:
		return State{}, fmt.Errorf("invalid view key %q: evidence must be p or v", key)
	}
	switch key[1] {
	case 'd':
		s.Granularity = GranularityDomain
	case 'p':
		s.Granularity = GranularityProtein
	default:
		return State{}, fmt.Errorf("invalid view key %q: granularity must be d or p", key)
	}
	return s, nil
}

// All lists the four view states, starting from Initial.
func All() []State {
	return []State{
		{Granularity: GranularityDomain, ShowPredicted: true},
		{Granularity: GranularityProtein, ShowPredicted: true},
		{Granularity: GranularityDomain, ShowPredicted: false},
		{Granularity: GranularityProtein, ShowPredicted: false},
	}
}

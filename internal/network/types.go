// Package network defines the interolog graph: tagged protein, domain and
// terminus nodes, the edges between them, and the groups that own them.
package network

import "fmt"

// Species identifies one of the two compared organisms.
type Species uint8

const (
	Species1 Species = 1
	Species2 Species = 2
)

// Valid reports whether s is one of the two known species.
func (s Species) Valid() bool {
	return s == Species1 || s == Species2
}

// Opposite returns the other species.
func (s Species) Opposite() Species {
	if s == Species1 {
		return Species2
	}
	return Species1
}

// Sign is -1 for species 1 (left of centre) and +1 for species 2.
func (s Species) Sign() float64 {
	if s == Species1 {
		return -1
	}
	return 1
}

func (s Species) String() string {
	return fmt.Sprintf("species%d", s)
}

// Role is the structural part a node plays in the drawing.
type Role uint8

const (
	RoleTarget   Role = iota // interaction partner of a query protein
	RoleQuery                // one of the two query proteins
	RoleAnchor               // domain of a query protein
	RoleTerminus             // N- or C-terminus marker of a query protein
)

func (r Role) String() string {
	switch r {
	case RoleQuery:
		return "query"
	case RoleAnchor:
		return "anchor"
	case RoleTerminus:
		return "terminus"
	default:
		return "target"
	}
}

// Level is a bitset of the granularities at which a target interacts with
// its query protein. A target can be both a protein-target and a
// domain-target.
type Level uint8

const (
	LevelProtein Level = 1 << iota
	LevelDomain
)

// Has reports whether every bit of x is set in l.
func (l Level) Has(x Level) bool {
	return l&x == x
}

// Evidence is the confidence of the interaction placing a node in the graph.
type Evidence uint8

const (
	EvidenceValidated Evidence = iota
	EvidencePredicted
)

func (e Evidence) String() string {
	if e == EvidencePredicted {
		return "predicted"
	}
	return "validated"
}

// MatchStatus classifies a node by its cross-species partners.
type MatchStatus uint8

const (
	Unmatchable MatchStatus = iota // no cross-species partner at all
	Unmatched                      // partners exist but none is visible
	Matched                        // at least one partner is visible
)

func (m MatchStatus) String() string {
	switch m {
	case Matched:
		return "matched"
	case Unmatched:
		return "unmatched"
	default:
		return "unmatchable"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m MatchStatus) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MatchStatus) UnmarshalText(b []byte) error {
	v, err := ParseMatchStatus(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMatchStatus converts a status name back into a MatchStatus.
func ParseMatchStatus(s string) (MatchStatus, error) {
	switch s {
	case "matched":
		return Matched, nil
	case "unmatched":
		return Unmatched, nil
	case "unmatchable":
		return Unmatchable, nil
	}
	return Unmatchable, fmt.Errorf("unknown match status %q", s)
}

// Terminus distinguishes the two terminus markers of a query protein.
type Terminus uint8

const (
	TerminusNone Terminus = iota
	TerminusN
	TerminusC
)

// EdgeKind is the type of relationship an edge draws.
type EdgeKind uint8

const (
	KindInteraction EdgeKind = iota
	KindOrthology
	KindSequence
)

func (k EdgeKind) String() string {
	switch k {
	case KindOrthology:
		return "orthology"
	case KindSequence:
		return "sequence"
	default:
		return "interaction"
	}
}

// GroupID names a display group (compound container) owning nodes.
type GroupID string

const (
	GroupNone         GroupID = ""
	GroupInterologs   GroupID = "Interologs"
	GroupUnmatched1   GroupID = "Unmatched 1"
	GroupUnmatched2   GroupID = "Unmatched 2"
	GroupUnmatchable1 GroupID = "Unmatchable 1"
	GroupUnmatchable2 GroupID = "Unmatchable 2"
)

const anchorGroupPrefix = "anchor:"

// UnmatchedGroup returns the unmatched group of species s.
func UnmatchedGroup(s Species) GroupID {
	if s == Species1 {
		return GroupUnmatched1
	}
	return GroupUnmatched2
}

// UnmatchableGroup returns the unmatchable group of species s.
func UnmatchableGroup(s Species) GroupID {
	if s == Species1 {
		return GroupUnmatchable1
	}
	return GroupUnmatchable2
}

// AnchorGroup returns the organizing box of the domain anchor with the given id.
func AnchorGroup(anchorID string) GroupID {
	return GroupID(anchorGroupPrefix + anchorID)
}

// IsAnchor reports whether g is a per-anchor organizing box.
func (g GroupID) IsAnchor() bool {
	return len(g) > len(anchorGroupPrefix) && string(g[:len(anchorGroupPrefix)]) == anchorGroupPrefix
}

// FixedGroups lists the five containers every document renders, in display order.
var FixedGroups = []GroupID{
	GroupInterologs,
	GroupUnmatched1,
	GroupUnmatched2,
	GroupUnmatchable1,
	GroupUnmatchable2,
}

// Node is a single element of the interolog graph.
type Node struct {
	ID       string
	Name     string
	Species  Species
	Role     Role
	Level    Level
	Evidence Evidence
	Terminus Terminus

	// Partners are the declared cross-species interaction partners.
	Partners []string

	// ForceUnmatchable is set when the document itself declares the node
	// unmatchable, independent of its partner list.
	ForceUnmatchable bool

	// Derived classification, owned by the view pipeline.
	Status MatchStatus
	Group  GroupID

	// Informational fields carried through to exports.
	Length        int
	NumNeighbours int
}

// IsTarget reports whether n is an interaction partner of a query protein.
func (n *Node) IsTarget() bool {
	return n.Role == RoleTarget
}

// IsDomainTarget reports whether n interacts with a domain of its query protein.
func (n *Node) IsDomainTarget() bool {
	return n.Role == RoleTarget && n.Level.Has(LevelDomain)
}

// IsProteinTarget reports whether n interacts with its query protein as a whole.
func (n *Node) IsProteinTarget() bool {
	return n.Role == RoleTarget && n.Level.Has(LevelProtein)
}

// Edge is an undirected relationship between two nodes.
type Edge struct {
	Source string
	Target string
	Kind   EdgeKind

	// ProteinOnly edges are drawn only at protein granularity.
	ProteinOnly bool
}

// Key returns a stable identifier for the edge.
func (e Edge) Key() string {
	return e.Source + "|" + e.Target + "|" + e.Kind.String()
}

// Meta carries the document-level names shown in summaries.
type Meta struct {
	Species1Name string `json:"species1,omitempty"`
	Species2Name string `json:"species2,omitempty"`
	Protein1     string `json:"protein1,omitempty"`
	Protein2     string `json:"protein2,omitempty"`
}

// SpeciesName returns the display name of s, falling back to "species1"/"species2".
func (m Meta) SpeciesName(s Species) string {
	name := m.Species1Name
	if s == Species2 {
		name = m.Species2Name
	}
	if name == "" {
		return s.String()
	}
	return name
}

package network

import (
	"errors"
	"strings"
	"testing"
)

const sampleDocument = `[
  {"group":"nodes","data":{"id":"stats","species1":"Mouse","species2":"Human","protein1":"ITSN1","protein2":"ITSN1"},"classes":"hidden"},
  {"group":"nodes","data":{"id":"Interologs","name":"Interologs"},"classes":"container"},
  {"group":"nodes","data":{"id":"q1","name":"ITSN1"},"classes":"species1 protein queryProtein"},
  {"group":"nodes","data":{"id":"d1","name":"SH3A"},"classes":"species1 domain"},
  {"group":"nodes","data":{"id":"n-term-1","name":"N"},"classes":"species1 terminus"},
  {"group":"nodes","data":{"id":"A1","name":"Dnm1","partners":["B1"],"length":864},"classes":"species1 protein protein-target domain-target validated"},
  {"group":"nodes","data":{"id":"B1","name":"DNM1","partners":["A1"]},"classes":"species2 protein protein-target predicted"},
  {"group":"nodes","data":{"id":"C1","name":"Sos1"},"classes":"species1 protein protein-target predicted validated unmatchable"},
  {"group":"edges","data":{"source":"d1","target":"A1"}},
  {"data":{"source":"A1","target":"B1"},"classes":"orthology"},
  {"group":"edges","data":{"source":"q1","target":"C1"},"classes":"no-domain-show"},
  {"group":"edges","data":{"source":"Interologs","target":"A1"}}
]`

func TestLoad_SampleDocument(t *testing.T) {
	g, err := Load(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6 (containers and hidden carriers skipped)", g.Len())
	}
	if g.Meta.Species1Name != "Mouse" || g.Meta.Species2Name != "Human" {
		t.Errorf("Meta = %+v, want Mouse/Human", g.Meta)
	}
	if len(g.Edges()) != 3 {
		t.Errorf("got %d edges, want 3", len(g.Edges()))
	}

	tests := []struct {
		id       string
		species  Species
		role     Role
		level    Level
		evidence Evidence
		force    bool
	}{
		{"q1", Species1, RoleQuery, 0, EvidenceValidated, false},
		{"d1", Species1, RoleAnchor, LevelDomain, EvidenceValidated, false},
		{"n-term-1", Species1, RoleTerminus, LevelDomain, EvidenceValidated, false},
		{"A1", Species1, RoleTarget, LevelProtein | LevelDomain, EvidenceValidated, false},
		{"B1", Species2, RoleTarget, LevelProtein, EvidencePredicted, false},
		{"C1", Species1, RoleTarget, LevelProtein, EvidenceValidated, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := g.Node(tt.id)
			if !ok {
				t.Fatalf("node %s not loaded", tt.id)
			}
			if n.Species != tt.species {
				t.Errorf("Species = %v, want %v", n.Species, tt.species)
			}
			if n.Role != tt.role {
				t.Errorf("Role = %v, want %v", n.Role, tt.role)
			}
			if n.Level != tt.level {
				t.Errorf("Level = %b, want %b", n.Level, tt.level)
			}
			if n.Evidence != tt.evidence {
				t.Errorf("Evidence = %v, want %v", n.Evidence, tt.evidence)
			}
			if n.ForceUnmatchable != tt.force {
				t.Errorf("ForceUnmatchable = %v, want %v", n.ForceUnmatchable, tt.force)
			}
		})
	}

	term, _ := g.Node("n-term-1")
	if term.Terminus != TerminusN {
		t.Errorf("Terminus = %v, want TerminusN", term.Terminus)
	}

	var orthology, proteinOnly int
	for _, e := range g.Edges() {
		if e.Kind == KindOrthology {
			orthology++
		}
		if e.ProteinOnly {
			proteinOnly++
		}
	}
	if orthology != 1 || proteinOnly != 1 {
		t.Errorf("orthology=%d proteinOnly=%d, want 1 and 1", orthology, proteinOnly)
	}
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{
			name: "element stream",
			doc: `{"data":{"id":"A1"},"classes":"species1"}
{"data":{"id":"B1"},"classes":"species2"}
{"data":{"source":"A1","target":"B1"}}`,
			want: 3,
		},
		{
			name: "object with elements",
			doc:  `{"elements":[{"data":{"id":"A1"},"classes":"species1"}]}`,
			want: 1,
		},
		{
			name: "object with nodes and edges",
			doc:  `{"nodes":[{"data":{"id":"A1"},"classes":"species1"},{"data":{"id":"B1"},"classes":"species2"}],"edges":[{"data":{"source":"A1","target":"B1"}}]}`,
			want: 3,
		},
		{
			name: "single element",
			doc:  `{"data":{"id":"A1"},"classes":"species1"}`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			els, err := Decode(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(els) != tt.want {
				t.Errorf("got %d elements, want %d", len(els), tt.want)
			}
			if _, err := Build(els); err != nil {
				t.Errorf("Build() error = %v", err)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"empty", "  ", ErrMalformedDocument},
		{"bad json", `[{"data":`, ErrMalformedDocument},
		{"missing species", `[{"data":{"id":"A1"},"classes":"protein"}]`, ErrMalformedDocument},
		{"missing id", `[{"data":{"name":"x"},"classes":"species1"}]`, ErrMalformedDocument},
		{"duplicate id", `[{"data":{"id":"A1"},"classes":"species1"},{"data":{"id":"A1"},"classes":"species2"}]`, ErrDuplicateNode},
		{"unknown endpoint", `[{"data":{"id":"A1"},"classes":"species1"},{"data":{"source":"A1","target":"Z9"}}]`, ErrUnknownEndpoint},
		{"self edge", `[{"data":{"id":"A1"},"classes":"species1"},{"data":{"source":"A1","target":"A1"}}]`, ErrMalformedDocument},
		{"empty partner id", `[{"data":{"id":"A1","partners":[""]},"classes":"species1"}]`, ErrMalformedDocument},
		{"terminus without end", `[{"data":{"id":"t1"},"classes":"species1 terminus"}]`, ErrMissingTerminus},
		{"unknown group", `[{"group":"ports","data":{"id":"p"}}]`, ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if g != nil {
				t.Error("Load() returned a partial graph")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if !IsMalformed(err) {
				t.Errorf("IsMalformed(%v) = false", err)
			}
		})
	}
}

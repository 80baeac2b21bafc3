package main

import (
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [document]",
	Short: "Check a graph document",
	Long: `Load a graph document and report what it contains.

Malformed documents exit with code 3. Partner ids that name no node in the
document are not errors; they are listed so that they can be checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

// ValidateResponse is the response for the validate command.
type ValidateResponse struct {
	Path     string              `json:"path"`
	Nodes    int                 `json:"nodes"`
	Edges    int                 `json:"edges"`
	Roles    map[string]int      `json:"roles"`
	Species  map[string]int      `json:"species"`
	Dangling map[string][]string `json:"dangling,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, path := mustLoadGraph(args)

	resp := ValidateResponse{
		Path:     path,
		Nodes:    g.Len(),
		Edges:    len(g.Edges()),
		Roles:    make(map[string]int),
		Species:  make(map[string]int),
		Dangling: g.Dangling(),
	}
	for _, n := range g.Nodes() {
		resp.Roles[n.Role.String()]++
		resp.Species[g.Meta.SpeciesName(n.Species)]++
	}

	if !humanOutput {
		return outputJSON(resp)
	}

	outputHuman("%s: %d nodes, %d edges\n", path, resp.Nodes, resp.Edges)
	for _, role := range sortedKeys(resp.Roles) {
		outputHuman("  %-10s %d\n", role, resp.Roles[role])
	}
	for _, sp := range sortedKeys(resp.Species) {
		outputHuman("  %-10s %d\n", sp, resp.Species[sp])
	}
	if len(resp.Dangling) == 0 {
		return nil
	}
	outputHuman("\nPartners not in the document:\n")
	var ids []string
	for id := range resp.Dangling {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		outputHuman("  %s -> %v\n", id, resp.Dangling[id])
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}


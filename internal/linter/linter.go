// Package linter checks a menu graph for structural mistakes before it is
// deployed behind a live shortcode.
package linter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/akwaba/ussdflow/pkg/adapters/file"
	"github.com/akwaba/ussdflow/pkg/domain"
)

var menuIDPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Findings collects what the linter has to say about one menu. Errors make
// the graph unusable, warnings are likely mistakes, infos describe intent
// the author should confirm.
type Findings struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Infos    []string `json:"infos,omitempty"`
}

// Report is the outcome of one graph check.
type Report struct {
	// OK is false when the graph or any menu produced an error.
	OK bool `json:"ok"`

	// Graph holds graph-level errors that belong to no single menu.
	Graph []string `json:"graph,omitempty"`

	Menus map[string]*Findings `json:"menus,omitempty"`
}

// MenuIDs returns the ids with findings, sorted for stable output.
func (r *Report) MenuIDs() []string {
	ids := make([]string, 0, len(r.Menus))
	for id := range r.Menus {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Check lints an in-memory graph.
func Check(graph domain.Graph) *Report {
	r := &Report{OK: true, Menus: map[string]*Findings{}}

	if !graph.Has(domain.WelcomeMenuID) {
		r.OK = false
		r.Graph = append(r.Graph, fmt.Sprintf("a menu named %q is required as the entry point", domain.WelcomeMenuID))
	}

	for id, menu := range graph {
		f := &Findings{}
		checkMenu(graph, id, menu, f)
		if len(f.Errors) > 0 {
			r.OK = false
		}
		if len(f.Errors)+len(f.Warnings)+len(f.Infos) > 0 {
			r.Menus[id] = f
		}
	}
	return r
}

// CheckBytes lints a serialized graph document.
func CheckBytes(raw []byte) (*Report, error) {
	graph, _, err := file.Decode(raw)
	if err != nil {
		return nil, err
	}
	return Check(graph), nil
}

func checkMenu(graph domain.Graph, id string, menu *domain.Menu, f *Findings) {
	if !menuIDPattern.MatchString(id) {
		f.Errors = append(f.Errors, "invalid menu id: only letters, numbers and underscores are allowed, starting with a letter")
	}

	if menu.Message == "" {
		if menu.Terminal() {
			f.Warnings = append(f.Warnings, "no message and no actions: this menu ends the session with the default end message")
		} else {
			f.Infos = append(f.Infos, "no message: the menu's before hook must supply one")
		}
	} else if menu.Terminal() {
		f.Infos = append(f.Infos, "no actions: this menu is a final response")
	}

	seen := map[string]bool{}
	for _, act := range menu.Actions {
		if act.Trigger == "" {
			f.Errors = append(f.Errors, "action with an empty trigger")
			continue
		}
		if seen[act.Trigger] {
			f.Errors = append(f.Errors, fmt.Sprintf("duplicate trigger %q: only the first occurrence is reachable", act.Trigger))
		}
		seen[act.Trigger] = true
		checkTarget(graph, fmt.Sprintf("action %q", act.Trigger), act.Target, f)
	}

	if menu.DefaultTarget != "" {
		checkTarget(graph, "default action", menu.DefaultTarget, f)
	}
}

func checkTarget(graph domain.Graph, what, target string, f *Findings) {
	switch {
	case target == "":
		f.Errors = append(f.Errors, what+" has no target menu")
	case graph.Has(target) || domain.IsSpecial(target):
		// Known destination.
	case isURL(target):
		f.Infos = append(f.Infos, fmt.Sprintf("%s hands the session over to %s", what, target))
	default:
		f.Errors = append(f.Errors, fmt.Sprintf("%s points to unknown menu %q", what, target))
	}
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

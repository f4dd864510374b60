package domain

// Action is one selectable entry of a menu. Trigger is the exact keystroke
// sequence that selects it, Label the text rendered next to the trigger, and
// Target a menu id, a Special action, or an absolute URL to hand the session
// over to.
type Action struct {
	Trigger string `yaml:"trigger" json:"trigger"`
	Label   string `yaml:"display" json:"display"`
	Target  string `yaml:"next_menu" json:"next_menu"`

	// SaveAs, when set, replaces the raw input in the captured responses.
	SaveAs string `yaml:"save_as,omitempty" json:"save_as,omitempty"`
}

// Menu is one node of the menu graph. A menu without actions and without a
// default target is a terminal leaf: rendering it ends the session.
type Menu struct {
	// Message is the static text shown above the items. It may embed
	// :name: placeholders filled by the menu's before hook. A menu with no
	// message must produce one from its before hook.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`

	Actions []Action `yaml:"actions,omitempty" json:"actions,omitempty"`

	// DefaultTarget resolves input that matches no action trigger.
	DefaultTarget string `yaml:"default_next_menu,omitempty" json:"default_next_menu,omitempty"`
}

// ActionFor returns the action keyed by trigger, or nil.
func (m *Menu) ActionFor(trigger string) *Action {
	for i := range m.Actions {
		if m.Actions[i].Trigger == trigger {
			return &m.Actions[i]
		}
	}
	return nil
}

// HasBackAction reports whether any action targets Back. Split menus use it
// to decide whether the first page needs a back control line.
func (m *Menu) HasBackAction() bool {
	for i := range m.Actions {
		if Special(m.Actions[i].Target) == Back {
			return true
		}
	}
	return false
}

// Terminal reports whether the menu is a leaf with nothing to select.
func (m *Menu) Terminal() bool {
	return len(m.Actions) == 0 && m.DefaultTarget == ""
}

// Graph is the validated set of menus, keyed by menu id.
type Graph map[string]*Menu

// Has reports whether id names a menu in the graph.
func (g Graph) Has(id string) bool {
	_, ok := g[id]
	return ok
}

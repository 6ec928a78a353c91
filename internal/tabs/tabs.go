// Package tabs defines the closed set of report tabs and the cursor that
// selects between them.
package tabs

import (
	"fmt"
	"strings"
)

// Tab identifies one report view. The zero value is the first tab.
type Tab int

const (
	Due Tab = iota
	Active
	Inbox
)

type meta struct {
	title     string
	directive []string
	color     bool
}

// table is indexed by Tab; its order is the cycling and rendering order.
var table = [...]meta{
	Due:    {title: "Due", directive: []string{"due"}, color: true},
	Active: {title: "Active", directive: []string{"active"}, color: false},
	Inbox:  {title: "Inbox", directive: []string{"-PROJECT"}, color: true},
}

// All returns every tab in enumeration order.
func All() []Tab {
	out := make([]Tab, len(table))
	for i := range table {
		out[i] = Tab(i)
	}
	return out
}

// Count is the number of tabs.
func Count() int { return len(table) }

// Valid reports whether t is a member of the enumeration.
func (t Tab) Valid() bool { return t >= 0 && int(t) < len(table) }

func (t Tab) Title() string {
	if !t.Valid() {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return table[t].title
}

func (t Tab) String() string { return t.Title() }

// Directive returns a copy of the default argument set used to fetch the
// tab's report.
func (t Tab) Directive() []string {
	if !t.Valid() {
		return nil
	}
	return append([]string(nil), table[t].directive...)
}

// Color reports whether the tab's report is fetched with colour enabled.
func (t Tab) Color() bool {
	return t.Valid() && table[t].color
}

// Parse maps a case-insensitive tab title to its Tab.
func Parse(name string) (Tab, error) {
	name = strings.TrimSpace(name)
	for i, m := range table {
		if strings.EqualFold(m.title, name) {
			return Tab(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q", name)
}

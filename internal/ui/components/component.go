// Package components holds the UI building blocks of the status screen.
// Every block implements Component; containers dispatch input and collect
// commands through EventPump and CommandPump over their children, which they
// list in a fixed order.
package components

import tea "github.com/charmbracelet/bubbletea"

// CommandBlocking tells CommandPump whether later components may still
// contribute commands.
type CommandBlocking int

const (
	// PassingOn lets later components add their commands.
	PassingOn CommandBlocking = iota
	// Blocking hides the commands of all later components.
	Blocking
)

// Component is a UI element that reacts to input and advertises the
// commands it currently offers.
type Component interface {
	// Commands appends this component's commands to out. forceAll asks for
	// every command regardless of state (used by the help screen).
	Commands(out *[]CommandInfo, forceAll bool) CommandBlocking
	// Event handles msg and reports whether it was consumed.
	Event(msg tea.Msg) (bool, error)

	Focused() bool
	Focus(focus bool)

	IsVisible() bool
	Hide()
	Show() error
}

// Drawable renders itself into a width x height cell area.
type Drawable interface {
	Draw(width, height int) string
}

// EventPump offers msg to each component in order until one consumes it.
// An error stops the pump.
func EventPump(msg tea.Msg, components []Component) (bool, error) {
	for _, c := range components {
		consumed, err := c.Event(msg)
		if err != nil {
			return false, err
		}
		if consumed {
			return true, nil
		}
	}
	return false, nil
}

// CommandPump collects commands from components in order. The first
// component to return Blocking stops collection unless forceAll is set.
func CommandPump(out *[]CommandInfo, forceAll bool, components []Component) {
	for _, c := range components {
		if c.Commands(out, forceAll) != PassingOn && !forceAll {
			break
		}
	}
}

// VisibilityBlocking is Blocking while c is visible.
func VisibilityBlocking(c Component) CommandBlocking {
	if c.IsVisible() {
		return Blocking
	}
	return PassingOn
}

// ToggleVisible hides c when visible and shows it otherwise.
func ToggleVisible(c Component) error {
	if c.IsVisible() {
		c.Hide()
		return nil
	}
	return c.Show()
}

// ── defaults ────────────────────────────────────────────────────────────────

// noFocus is embedded by components that never take focus.
type noFocus struct{}

func (noFocus) Focused() bool { return false }
func (noFocus) Focus(bool)    {}

// alwaysVisible is embedded by components that are part of the main layout.
type alwaysVisible struct{}

func (alwaysVisible) IsVisible() bool { return true }
func (alwaysVisible) Hide()           {}
func (alwaysVisible) Show() error     { return nil }

// popup is embedded by components that appear on demand.
type popup struct {
	visible bool
}

func (p *popup) IsVisible() bool { return p.visible }
func (p *popup) Hide()           { p.visible = false }
func (p *popup) Show() error {
	p.visible = true
	return nil
}

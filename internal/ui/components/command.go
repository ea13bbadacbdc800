package components

import "sort"

// Command ordering in the command bar; lower comes first.
const (
	OrderDefault    = 0
	OrderNav        = 1
	OrderRareAction = 30
)

// CommandText describes a command for the command bar and help screen.
type CommandText struct {
	Name     string
	Desc     string
	Group    string
	HideHelp bool
}

// CommandInfo is one command a component offers right now.
type CommandInfo struct {
	Text CommandText
	// Enabled commands can be executed in the current state.
	Enabled bool
	// QuickBar commands appear in the bottom command bar.
	QuickBar bool
	// Available commands apply to the focused context at all.
	Available bool
	Order     int
}

// NewCommandInfo returns a command shown in the command bar.
func NewCommandInfo(text CommandText, enabled, available bool) CommandInfo {
	return CommandInfo{
		Text:      text,
		Enabled:   enabled,
		QuickBar:  true,
		Available: available,
		Order:     OrderDefault,
	}
}

// WithOrder sets the command bar position.
func (c CommandInfo) WithOrder(order int) CommandInfo {
	c.Order = order
	return c
}

// Hidden keeps the command out of the command bar; help still lists it.
func (c CommandInfo) Hidden() CommandInfo {
	c.QuickBar = false
	return c
}

// ShowInQuickBar reports whether the command bar should render c.
func (c CommandInfo) ShowInQuickBar() bool {
	return c.QuickBar && c.Available
}

// SortCommands orders cmds by Order, keeping pump order for ties.
func SortCommands(cmds []CommandInfo) {
	sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].Order < cmds[j].Order })
}

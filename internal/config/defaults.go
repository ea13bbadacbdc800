package config

// KeyBindings maps each action to the keys that trigger it, using the key
// names bubbletea reports ("down", "ctrl+s", "j").
type KeyBindings struct {
	Quit           []string `mapstructure:"quit"`
	OpenHelp       []string `mapstructure:"open_help"`
	ExitPopup      []string `mapstructure:"exit_popup"`
	Enter          []string `mapstructure:"enter"`
	FocusWorkDir   []string `mapstructure:"focus_workdir"`
	FocusStage     []string `mapstructure:"focus_stage"`
	FocusRight     []string `mapstructure:"focus_right"`
	FocusLeft      []string `mapstructure:"focus_left"`
	MoveUp         []string `mapstructure:"move_up"`
	MoveDown       []string `mapstructure:"move_down"`
	PageUp         []string `mapstructure:"page_up"`
	PageDown       []string `mapstructure:"page_down"`
	Home           []string `mapstructure:"home"`
	End            []string `mapstructure:"end"`
	EditFile       []string `mapstructure:"edit_file"`
	StageAll       []string `mapstructure:"stage_all"`
	ResetItem      []string `mapstructure:"reset_item"`
	OpenCommit     []string `mapstructure:"open_commit"`
	CommitConfirm  []string `mapstructure:"commit_confirm"`
	CreateBranch   []string `mapstructure:"create_branch"`
	Push           []string `mapstructure:"push"`
	ToggleSideDiff []string `mapstructure:"toggle_side_diff"`
	Tab            []string `mapstructure:"tab"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:           []string{"q", "ctrl+c"},
		OpenHelp:       []string{"?"},
		ExitPopup:      []string{"esc"},
		Enter:          []string{"enter"},
		FocusWorkDir:   []string{"w"},
		FocusStage:     []string{"s"},
		FocusRight:     []string{"right", "l"},
		FocusLeft:      []string{"left", "h"},
		MoveUp:         []string{"up", "k"},
		MoveDown:       []string{"down", "j"},
		PageUp:         []string{"pgup", "ctrl+u"},
		PageDown:       []string{"pgdown", "ctrl+d"},
		Home:           []string{"home", "g"},
		End:            []string{"end", "G"},
		EditFile:       []string{"e"},
		StageAll:       []string{"a"},
		ResetItem:      []string{"D"},
		OpenCommit:     []string{"c"},
		CommitConfirm:  []string{"ctrl+s"},
		CreateBranch:   []string{"b"},
		Push:           []string{"p"},
		ToggleSideDiff: []string{"v"},
		Tab:            []string{"tab", "shift+tab"},
	}
}

func (k KeyBindings) asMap() map[string][]string {
	return map[string][]string{
		"quit":             k.Quit,
		"open_help":        k.OpenHelp,
		"exit_popup":       k.ExitPopup,
		"enter":            k.Enter,
		"focus_workdir":    k.FocusWorkDir,
		"focus_stage":      k.FocusStage,
		"focus_right":      k.FocusRight,
		"focus_left":       k.FocusLeft,
		"move_up":          k.MoveUp,
		"move_down":        k.MoveDown,
		"page_up":          k.PageUp,
		"page_down":        k.PageDown,
		"home":             k.Home,
		"end":              k.End,
		"edit_file":        k.EditFile,
		"stage_all":        k.StageAll,
		"reset_item":       k.ResetItem,
		"open_commit":      k.OpenCommit,
		"commit_confirm":   k.CommitConfirm,
		"create_branch":    k.CreateBranch,
		"push":             k.Push,
		"toggle_side_diff": k.ToggleSideDiff,
		"tab":              k.Tab,
	}
}

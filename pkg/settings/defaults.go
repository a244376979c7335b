package settings

// Default returns the tree written by "prefs init": general settings plus
// the hotkeys understood by the host loop.
func Default() *Tree {
	return &Tree{Sections: []*Section{
		{
			Name:  "Preferences.General",
			Order: 0,
			Entries: []*Entry{
				{Name: "Preferences.General.Theme", Value: "Dark", Options: []string{"Dark", "Light", "HighContrast"}},
				{Name: "Preferences.General.Language", Value: "en", Options: []string{"en", "de"}},
				{Name: "Preferences.General.UserName", Value: ""},
			},
		},
		{
			Name:  "Preferences.HotKeys",
			Order: 1,
			Entries: []*Entry{
				{Name: "Preferences.HotKeys.Exit", Value: "Ctrl+Q"},
				{Name: "Preferences.HotKeys.OpenPreferences", Value: "Ctrl+P"},
				{Name: "Preferences.HotKeys.ShowHotKeys", Value: "Ctrl+H"},
			},
		},
	}}
}

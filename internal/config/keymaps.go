package config

// KeyMappings defines all configurable key bindings of the terminal board
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column" mapstructure:"prev_column"`
	NextColumn string `yaml:"next_column" mapstructure:"next_column"`
	PrevCard   string `yaml:"prev_card" mapstructure:"prev_card"`
	NextCard   string `yaml:"next_card" mapstructure:"next_card"`

	// Moving cards
	PickUp string `yaml:"pick_up" mapstructure:"pick_up"`
	Drop   string `yaml:"drop" mapstructure:"drop"`
	Cancel string `yaml:"cancel" mapstructure:"cancel"`

	// Other
	Reload   string `yaml:"reload" mapstructure:"reload"`
	ShowHelp string `yaml:"show_help" mapstructure:"show_help"`
	Quit     string `yaml:"quit" mapstructure:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevCard:   "k",
		NextCard:   "j",
		PickUp:     " ",
		Drop:       "enter",
		Cancel:     "esc",
		Reload:     "r",
		ShowHelp:   "?",
		Quit:       "q",
	}
}

// applyDefaults fills in any missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevCard == "" {
		k.PrevCard = defaults.PrevCard
	}
	if k.NextCard == "" {
		k.NextCard = defaults.NextCard
	}
	if k.PickUp == "" {
		k.PickUp = defaults.PickUp
	}
	if k.Drop == "" {
		k.Drop = defaults.Drop
	}
	if k.Cancel == "" {
		k.Cancel = defaults.Cancel
	}
	if k.Reload == "" {
		k.Reload = defaults.Reload
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}

package app

import (
	"fmt"

	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/screens"
	"github.com/quillpad/quill/tabs"
)

// RegisterSettings declares every option the app persists. Values are
// validated on write; a bad value never replaces a good one.
func RegisterSettings(store *config.Store) {
	general := store.Section("general")
	general.AddOption("encoding", "UTF-8")
	general.Connect("encoding", validEncoding, false)
	general.AddOption("tab_width", 4)
	general.Connect("tab_width", config.IntRange(1, 16), false)
	general.AddOption("theme", core.ThemeNames()[0])
	general.Connect("theme", themeValidator(), false)
	general.AddOption("line_numbers", true)
}

func validEncoding(v any) error {
	name, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: encoding must be a string", config.ErrInvalidValue)
	}
	if _, err := tabs.LookupEncoding(name); err != nil {
		return fmt.Errorf("%w: unknown encoding %q", config.ErrInvalidValue, name)
	}
	return nil
}

func themeValidator() func(any) error {
	return config.OneOf(core.ThemeNames()...)
}

// settingsFields lays out the settings screen rows.
func settingsFields() []screens.Field {
	return []screens.Field{
		{Section: "general", Key: "encoding", Label: "Encoding", Kind: screens.FieldText},
		{Section: "general", Key: "tab_width", Label: "Tab width", Kind: screens.FieldInt},
		{Section: "general", Key: "theme", Label: "Theme", Kind: screens.FieldChoice, Choices: core.ThemeNames()},
	}
}

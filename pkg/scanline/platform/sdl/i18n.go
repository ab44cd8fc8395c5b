package sdl

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Titles renders the simulator's window title in the requested language.
type Titles struct {
	loc *i18n.Localizer
}

// NewTitles loads the embedded message files. lang is a BCP 47 tag; messages
// missing from it fall back to English.
func NewTitles(lang string) (*Titles, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return &Titles{loc: i18n.NewLocalizer(bundle, tag.String(), language.English.String())}, nil
}

// Window returns the base window title.
func (t *Titles) Window(name string, width, height int) string {
	s, err := t.loc.Localize(&i18n.LocalizeConfig{
		MessageID: "WindowTitle",
		TemplateData: map[string]any{
			"Name":   name,
			"Width":  width,
			"Height": height,
		},
	})
	if err != nil {
		return name
	}
	return s
}

// Depth describes how many screens are on the navigation stack.
func (t *Titles) Depth(n int) string {
	s, err := t.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    "Screens",
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if err != nil {
		return fmt.Sprint(n)
	}
	return s
}

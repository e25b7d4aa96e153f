// Package models defines data structures shared by the translation pipeline.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedLanguage indicates a language identifier outside the catalogue.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is an opaque language identifier passed to the translation capability.
type Language string

const (
	Chinese Language = "Chinese"
	English Language = "English"
	Arabic  Language = "Arabic"
	French  Language = "French"
	Spanish Language = "Spanish"
	German  Language = "German"
)

// languageLabels holds the display label for each supported language, in menu order.
var languageLabels = []struct {
	Lang  Language
	Label string
}{
	{Chinese, "简体中文"},
	{English, "英语"},
	{Arabic, "阿拉伯语"},
	{French, "法语"},
	{Spanish, "西班牙语"},
	{German, "德语"},
}

// Languages returns the supported languages in menu order.
func Languages() []Language {
	out := make([]Language, 0, len(languageLabels))
	for _, l := range languageLabels {
		out = append(out, l.Lang)
	}
	return out
}

// Label returns the display label for the language, or the identifier itself
// when the language is not in the catalogue.
func (l Language) Label() string {
	for _, e := range languageLabels {
		if e.Lang == l {
			return e.Label
		}
	}
	return string(l)
}

// Supported reports whether l is in the catalogue.
func (l Language) Supported() bool {
	for _, e := range languageLabels {
		if e.Lang == l {
			return true
		}
	}
	return false
}

// ParseLanguage resolves an identifier (case-insensitive) or a display label.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, e := range languageLabels {
		if strings.EqualFold(string(e.Lang), s) || e.Label == s {
			return e.Lang, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// DefaultRTL returns the default reading-direction flag for a target language.
func DefaultRTL(target Language) bool {
	return target == Arabic
}

package entity

import (
	"fmt"
	"strings"
)

// LexiconEntry is a stored lexicon word: a base form, its category,
// lexical features (gender, person, reflexive, ...) and irregular forms.
type LexiconEntry struct {
	ID       string            `json:"id" yaml:"id"`
	Language Language          `json:"language" yaml:"language,omitempty"`
	Base     string            `json:"base" yaml:"base"`
	Category string            `json:"category" yaml:"category"`
	Features map[string]string `json:"features,omitempty" yaml:"features,omitempty"`
	Forms    map[string]string `json:"forms,omitempty" yaml:"forms,omitempty"`
}

// Validate checks the fields required to index an entry.
func (e LexiconEntry) Validate() error {
	if strings.TrimSpace(e.Base) == "" {
		return fmt.Errorf("%w: empty base form (id %q)", ErrLexiconEntryInvalid, e.ID)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: %q has no category", ErrLexiconEntryInvalid, e.Base)
	}
	if NormalizeLanguage(e.Language) != e.Language {
		return fmt.Errorf("%w: %q has language %q", ErrLexiconEntryInvalid, e.Base, e.Language)
	}
	return nil
}

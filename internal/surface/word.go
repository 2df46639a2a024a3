package surface

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eslsoft/expreal/internal/entity"
)

// Word is a lexicon entry, or an ad-hoc word for text the lexicon does
// not know. Words handed out by a Lexicon are copies and may be mutated.
type Word struct {
	ID       string
	Base     string
	Category Category
	features Features
	forms    map[string]string
	known    bool
}

func newWord(entry entity.LexiconEntry) *Word {
	w := &Word{
		ID:       entry.ID,
		Base:     entry.Base,
		Category: Category(strings.ToUpper(entry.Category)),
		features: Features{},
		forms:    map[string]string{},
		known:    true,
	}
	for k, v := range entry.Features {
		w.features[strings.ToUpper(k)] = v
	}
	for k, v := range entry.Forms {
		w.forms[k] = v
	}
	return w
}

// NewWord creates a word outside any lexicon.
func NewWord(base string, category Category) *Word {
	return &Word{Base: base, Category: category, features: Features{}, forms: map[string]string{}}
}

func (w *Word) Feature(name string) string { return w.features.Get(name) }

func (w *Word) SetFeature(name, value string) { w.features.Set(name, value) }

// HasFeature reports whether the feature is present and not "false".
func (w *Word) HasFeature(name string) bool {
	v, ok := w.features[name]
	return ok && v != False
}

// IsA reports the lexical category.
func (w *Word) IsA(c Category) bool {
	return w.Category == c
}

// Known reports whether the word came from the lexicon.
func (w *Word) Known() bool {
	return w.known
}

// Form returns an irregular form stored in the lexicon.
func (w *Word) Form(key string) string {
	return w.forms[key]
}

// IsProper reports whether the word behaves as a proper noun: flagged in
// the lexicon, or unknown and capitalised.
func (w *Word) IsProper() bool {
	if w.features.Bool(FeatureProper) {
		return true
	}
	if w.known || w.Base == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(w.Base)
	return unicode.IsUpper(r)
}

// Clone returns an independent copy.
func (w *Word) Clone() *Word {
	cp := *w
	cp.features = w.features.clone()
	cp.forms = make(map[string]string, len(w.forms))
	for k, v := range w.forms {
		cp.forms[k] = v
	}
	return &cp
}

func (w *Word) String() string {
	return w.Base
}

package surface

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eslsoft/expreal/internal/entity"
)

//go:embed lexicon/*.yaml
var lexiconFS embed.FS

// OfPrepositionID identifies the "of" preposition (of, de, van) in every
// bundled lexicon.
const OfPrepositionID = "E0043621"

type lexiconFile struct {
	Language entity.Language      `yaml:"language"`
	Entries  []entity.LexiconEntry `yaml:"entries"`
}

// BundledEntries returns the lexicon shipped with the binary for a language.
func BundledEntries(lang entity.Language) ([]entity.LexiconEntry, error) {
	lang = entity.NormalizeLanguage(lang)
	raw, err := lexiconFS.ReadFile("lexicon/" + lang.Code() + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedLanguage, lang)
	}
	return DecodeEntries(raw, lang)
}

// DecodeEntries parses a YAML lexicon document. Entries without a language
// inherit the document language, or fallback when the document has none.
func DecodeEntries(raw []byte, fallback entity.Language) ([]entity.LexiconEntry, error) {
	var doc lexiconFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	lang := doc.Language
	if lang == entity.LanguageUnspecified {
		lang = fallback
	}
	for i := range doc.Entries {
		if doc.Entries[i].Language == entity.LanguageUnspecified {
			doc.Entries[i].Language = lang
		}
		if err := doc.Entries[i].Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Entries, nil
}

// EncodeEntries writes entries in the bundled YAML layout.
func EncodeEntries(lang entity.Language, entries []entity.LexiconEntry) ([]byte, error) {
	return yaml.Marshal(lexiconFile{Language: lang, Entries: entries})
}

// Lexicon indexes the words of one language.
type Lexicon struct {
	language  entity.Language
	grammar   grammar
	words     []*Word
	byID      map[string]*Word
	byBase    map[string][]*Word
	byVariant map[string][]*Word
}

// LoadLexicon builds a lexicon from the bundled data.
func LoadLexicon(lang entity.Language) (*Lexicon, error) {
	entries, err := BundledEntries(lang)
	if err != nil {
		return nil, err
	}
	return NewLexicon(lang, entries)
}

// NewLexicon builds a lexicon from entries. Entries of other languages are
// ignored. Lookups honour entry order.
func NewLexicon(lang entity.Language, entries []entity.LexiconEntry) (*Lexicon, error) {
	lang = entity.NormalizeLanguage(lang)
	lex := &Lexicon{
		language:  lang,
		byID:      map[string]*Word{},
		byBase:    map[string][]*Word{},
		byVariant: map[string][]*Word{},
	}
	lex.grammar = newGrammar(lang, lex)
	for _, entry := range entries {
		if entry.Language == entity.LanguageUnspecified {
			entry.Language = lang
		}
		if entry.Language != lang {
			continue
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		w := newWord(entry)
		lex.words = append(lex.words, w)
		if w.ID != "" {
			lex.byID[w.ID] = w
		}
		key := strings.ToLower(w.Base)
		lex.byBase[key] = append(lex.byBase[key], w)
	}
	if len(lex.words) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrLexiconEmpty, lang)
	}
	for _, w := range lex.words {
		for _, variant := range lex.grammar.variants(w) {
			key := strings.ToLower(variant)
			if key == strings.ToLower(w.Base) {
				continue
			}
			lex.byVariant[key] = append(lex.byVariant[key], w)
		}
	}
	return lex, nil
}

// Language of the lexicon.
func (l *Lexicon) Language() entity.Language {
	return l.language
}

// Size is the number of indexed words.
func (l *Lexicon) Size() int {
	return len(l.words)
}

// Lookup finds a word by base form and category. CategoryAny matches the
// first word with that base.
func (l *Lexicon) Lookup(base string, category Category) (*Word, bool) {
	key := strings.ToLower(base)
	if w := pick(l.byBase[key], base, category); w != nil {
		return w.Clone(), true
	}
	if w := pick(l.byBase[key], "", category); w != nil {
		return w.Clone(), true
	}
	return nil, false
}

// GetWord returns the word for text, falling back to inflected variants
// and finally to an ad-hoc word carrying the text itself.
func (l *Lexicon) GetWord(text string, category Category) *Word {
	if w, ok := l.Lookup(text, category); ok {
		return w
	}
	if w := pick(l.byVariant[strings.ToLower(text)], "", category); w != nil {
		return w.Clone()
	}
	if category == CategoryAny {
		category = CategoryNoun
	}
	return NewWord(text, category)
}

// GetWordByID finds a word by its stable identifier.
func (l *Lexicon) GetWordByID(id string) (*Word, bool) {
	w, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

// HasWordFromVariant reports whether text is an inflected form of a known
// word of the category.
func (l *Lexicon) HasWordFromVariant(text string, category Category) bool {
	return pick(l.byVariant[strings.ToLower(text)], "", category) != nil
}

// GetWordByFeatures returns the first word of the category whose features
// agree with want. Boolean flags the caller asks for must be present, and
// reflexive or possessive words are only returned when asked for. When
// nothing agrees the search is retried without gender, then without case.
func (l *Lexicon) GetWordByFeatures(category Category, want Features) (*Word, bool) {
	attempts := []Features{want}
	relaxed := want.clone()
	if _, ok := relaxed[FeatureGender]; ok {
		delete(relaxed, FeatureGender)
		attempts = append(attempts, relaxed)
	}
	if _, ok := relaxed[FeatureCase]; ok {
		relaxed = relaxed.clone()
		delete(relaxed, FeatureCase)
		attempts = append(attempts, relaxed)
	}
	for _, attempt := range attempts {
		for _, w := range l.words {
			if w.Category == category && agrees(w, attempt) {
				return w.Clone(), true
			}
		}
	}
	return nil, false
}

func agrees(w *Word, want Features) bool {
	for _, flag := range []string{FeatureReflexive, FeaturePossessive} {
		if w.features.Bool(flag) && !want.Bool(flag) {
			return false
		}
	}
	for name, value := range want {
		if value == "" {
			continue
		}
		have, ok := w.features[name]
		if value == True && have != True {
			return false
		}
		if ok && have != value {
			return false
		}
	}
	return true
}

func pick(words []*Word, exact string, category Category) *Word {
	for _, w := range words {
		if exact != "" && w.Base != exact {
			continue
		}
		if category == CategoryAny || w.Category == category {
			return w
		}
	}
	return nil
}

package realizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/expreal/internal/entity"
)

const (
	templateColumns   = 5
	templateSeparator = ";"
)

var conditionListSeparator = regexp.MustCompile(` *, *`)

// ConditionalText is a template guarded by a list of conditions.
type ConditionalText struct {
	Conditions  []entity.Condition
	Template    string
	Specificity int
	UserDefined bool
	// Malformed texts carry an unparseable condition and never match.
	Malformed bool
}

// NewConditionalText parses a comma separated condition list.
func NewConditionalText(conditions, template string) (ConditionalText, error) {
	cat := ConditionalText{Template: template}
	conditions = strings.TrimSpace(conditionListSeparator.ReplaceAllString(conditions, ","))
	if conditions == "" {
		return cat, nil
	}
	var firstErr error
	for _, raw := range strings.Split(conditions, ",") {
		cond, err := ParseCondition(raw)
		if err != nil {
			cat.Malformed = true
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		cat.Conditions = append(cat.Conditions, cond)
	}
	cat.Specificity = len(cat.Conditions)
	cat.UserDefined = strings.Contains(conditions, "@")
	return cat, firstErr
}

// verified reports whether every condition holds.
func (t ConditionalText) verified(ev *conditionEvaluator, c *entity.Context) bool {
	if t.Malformed {
		return false
	}
	for _, cond := range t.Conditions {
		if !ev.Evaluate(cond, c) {
			return false
		}
	}
	return true
}

func (t ConditionalText) String() string {
	return fmt.Sprintf("%v -> %q", t.Conditions, t.Template)
}

// TemplateStore maps act keys to their conditional texts for one language.
type TemplateStore struct {
	language entity.Language
	texts    map[string][]ConditionalText
	keys     []string
}

// NewTemplateStore returns an empty store.
func NewTemplateStore(lang entity.Language) *TemplateStore {
	return &TemplateStore{language: entity.NormalizeLanguage(lang), texts: map[string][]ConditionalText{}}
}

// LoadTemplateFile reads a template sheet from disk.
func LoadTemplateFile(path string, lang entity.Language, logger *logrus.Logger) (*TemplateStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	defer f.Close()
	return LoadTemplates(f, lang, logger)
}

// LoadTemplates reads a ";" separated sheet with the columns
// key;condition;EN;FR;NL. Malformed rows are logged and skipped.
func LoadTemplates(r io.Reader, lang entity.Language, logger *logrus.Logger) (*TemplateStore, error) {
	store := NewTemplateStore(lang)
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithFields(logrus.Fields{"component": "templates", "language": store.language.String()})
	column := store.language.Ordinal() + 2

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cells := strings.Split(text, templateSeparator)
		if len(cells) != templateColumns {
			log.WithError(entity.ErrMalformedRow).Errorf("line %d has %d columns, want %d", line, len(cells), templateColumns)
			continue
		}
		cell := cells[column]
		if strings.TrimSpace(cell) == "" || strings.HasPrefix(cell, "#") {
			continue
		}
		if err := store.Add(cells[0], cells[1], cell); err != nil {
			log.WithError(err).Errorf("line %d: condition %q never matches", line, cells[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return store, nil
}

// Add appends a conditional text for key. The text is stored even when
// its condition is malformed; it then never matches.
func (s *TemplateStore) Add(key, conditions, template string) error {
	cat, err := NewConditionalText(conditions, template)
	if _, ok := s.texts[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.texts[key] = append(s.texts[key], cat)
	return err
}

// Lookup returns the texts for key in insertion order.
func (s *TemplateStore) Lookup(key string) ([]ConditionalText, bool) {
	texts, ok := s.texts[key]
	return texts, ok
}

// Keys returns the act keys in first-seen order.
func (s *TemplateStore) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len is the number of stored texts.
func (s *TemplateStore) Len() int {
	n := 0
	for _, texts := range s.texts {
		n += len(texts)
	}
	return n
}

func (s *TemplateStore) Language() entity.Language { return s.language }

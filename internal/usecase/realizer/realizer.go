package realizer

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/surface"
)

// DefaultMaxDepth bounds nested template expansion.
const DefaultMaxDepth = 64

// dialogTurns separates the turns of a dialog template.
var dialogTurns = regexp.MustCompile(`—|--`)

// Realizer turns narrative acts into text in one language.
type Realizer interface {
	// GetTexts realises a predicate. Dialog templates yield one text per
	// turn. Errors are logged; an invalid context yields no text.
	GetTexts(pred entity.Predicate, c *entity.Context) []string
	// Interpret expands and realises a template string.
	Interpret(text string, c *entity.Context) string
	// MarkThreadChange makes the next re-mention start a new discourse
	// thread.
	MarkThreadChange()
	// Mentions returns the tracked entities sorted by key.
	Mentions() []entity.MentionedEntity
	Language() entity.Language
}

// Option configures a Realizer.
type Option func(*options)

type options struct {
	seed     int64
	maxDepth int
}

// WithSeed fixes the seed used to choose among equally specific templates.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithMaxDepth sets the template expansion bound. Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

type realizer struct {
	mu       sync.Mutex
	language entity.Language
	store    *TemplateStore
	selector *selector
	lexicon  *surface.Lexicon
	surface  *surface.Realiser
	mentions *referringExpressions
	log      *logrus.Entry
	depth    int
	maxDepth int
}

// New creates a realizer over a template store and a lexicon of the same
// language.
func New(store *TemplateStore, lex *surface.Lexicon, logger *logrus.Logger, opts ...Option) (Realizer, error) {
	if store == nil || lex == nil {
		return nil, fmt.Errorf("realizer needs templates and a lexicon")
	}
	if store.Language() != lex.Language() {
		return nil, fmt.Errorf("%w: templates in %s, lexicon in %s", entity.ErrUnsupportedLanguage, store.Language(), lex.Language())
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	o := options{seed: time.Now().UnixNano(), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.WithFields(logrus.Fields{"component": "realizer", "language": store.Language().String()})
	return &realizer{
		language: store.Language(),
		store:    store,
		selector: &selector{
			store:     store,
			evaluator: newConditionEvaluator(),
			rng:       rand.New(rand.NewSource(o.seed)),
			language:  store.Language(),
			log:       log,
		},
		lexicon:  lex,
		surface:  surface.NewRealiser(lex),
		mentions: newReferringExpressions(),
		log:      log,
		maxDepth: o.maxDepth,
	}, nil
}

// NewFromFile loads a template sheet and the bundled lexicon of lang.
func NewFromFile(path string, lang entity.Language, logger *logrus.Logger, opts ...Option) (Realizer, error) {
	lang = entity.NormalizeLanguage(lang)
	store, err := LoadTemplateFile(path, lang, logger)
	if err != nil {
		return nil, err
	}
	lex, err := surface.LoadLexicon(lang)
	if err != nil {
		return nil, err
	}
	return New(store, lex, logger, opts...)
}

func (r *realizer) Language() entity.Language { return r.language }

func (r *realizer) GetTexts(pred entity.Predicate, c *entity.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c == nil {
		r.log.WithError(entity.ErrMissingSpeaker).Error("no context")
		return nil
	}
	warnings, err := c.Validate()
	for _, w := range warnings {
		r.log.WithError(w).Warn("context")
	}
	if err != nil {
		r.log.WithError(err).Errorf("cannot realise %s", pred)
		return nil
	}

	local := c.Clone()
	for _, arg := range pred.Arguments {
		local.AddArgument(arg)
	}

	template := r.selector.Select(pred.Type, local)
	if template == "" {
		return []string{pred.String()}
	}

	turns := dropTrailingEmpty(dialogTurns.Split(template, -1))
	if len(turns) == 1 {
		return []string{r.interpret(turns[0], local)}
	}
	texts := make([]string, 0, len(turns)/2)
	for i := 1; i < len(turns); i += 2 {
		texts = append(texts, r.interpret(turns[i], local))
	}
	return texts
}

func (r *realizer) Interpret(text string, c *entity.Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interpret(text, c)
}

// interpret runs the whole pipeline: dialog switch, argument expansion,
// grammatical blocks sentence by sentence, then variable expansion.
func (r *realizer) interpret(text string, c *entity.Context) string {
	if !r.enter(text) {
		return text
	}
	defer r.leave()

	text = switchDialog(text, c)
	text = r.expandDollar(text, c)
	if strings.Contains(text, "{") {
		sentences := splitSentences(text)
		for i, s := range sentences {
			sentences[i] = r.interpretSentence(s, c)
		}
		text = strings.Join(sentences, " ")
	}
	return r.expandPercent(text, c)
}

func (r *realizer) MarkThreadChange() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mentions.markThreadChange()
}

func (r *realizer) Mentions() []entity.MentionedEntity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mentions.snapshot()
}

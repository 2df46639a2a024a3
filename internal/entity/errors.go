package entity

import "errors"

// Realization errors. None of them escape GetTexts; they are logged and
// the pipeline degrades to partial output.
var (
	ErrMissingSpeaker      = errors.New("missing speaker")
	ErrMissingListener     = errors.New("missing listener")
	ErrUnknownAct          = errors.New("unknown act")
	ErrNoCandidateTemplate = errors.New("no candidate template")
	ErrMalformedCondition  = errors.New("malformed condition")
	ErrMalformedRow        = errors.New("malformed template row")
	ErrUnbalancedBraces    = errors.New("unbalanced braces")
	ErrDuplicateBlockType  = errors.New("duplicate block type")
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrEmptyVariable       = errors.New("empty variable")
	ErrCyclicExpansion     = errors.New("cyclic expansion")
)

// Lexicon and setup errors.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrLexiconEntryInvalid = errors.New("invalid lexicon entry")
	ErrLexiconEmpty        = errors.New("lexicon is empty")
)

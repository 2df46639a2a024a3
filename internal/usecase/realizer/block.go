package realizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/surface"
)

// Block types.
const (
	blockSubject        = "subject"
	blockObject         = "object"
	blockIndirectObject = "indirectobject"
	blockComplement     = "complement"
	blockVerb           = "verb"
	blockInf            = "inf"
	blockInfinitive     = "infinitive"
)

var subjectBlockStart = regexp.MustCompile(`\{#? ?subject ?:`)

// inputBlock is one {type: value} annotation of a clause:
//
//	premodifiers |main.features| postmodifiers < owner.features
type inputBlock struct {
	raw   string
	ghost bool
	kind  string
	value string

	mainNoun      string
	mainFeatures  string
	ownerNoun     string
	ownerFeatures string
	premodifiers  string
	postmodifiers string

	// filled while the clause is built
	element            surface.Element
	capitalise         bool
	reflexive          bool
	feminineParticiple bool
}

func newInputBlock(raw string) *inputBlock {
	b := &inputBlock{raw: raw}
	if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
		b.value = raw
		return b
	}
	start := 1
	if strings.HasPrefix(raw, "{#") {
		b.ghost = true
		start = 2
	}
	head, rest, ok := strings.Cut(raw, ":")
	if ok {
		b.kind = strings.ToLower(strings.TrimSpace(head[start:]))
		b.value = strings.TrimSpace(strings.TrimSuffix(rest, "}"))
	}
	return b
}

func (b *inputBlock) isInfinitive() bool {
	return b.kind == blockInf || b.kind == blockInfinitive
}

// parse splits the value into owner, features, main noun and modifiers.
func (b *inputBlock) parse() *inputBlock {
	value := b.value
	if main, owner, ok := strings.Cut(value, "<"); ok {
		value = main
		b.ownerNoun = strings.TrimSpace(owner)
	}
	// features belong to the piped main noun when there is one
	if parts := strings.SplitN(value, "|", 3); len(parts) > 1 {
		if main, features, ok := strings.Cut(parts[1], "."); ok {
			parts[1] = main
			b.mainFeatures = strings.TrimSpace(features)
			value = strings.Join(parts, "|")
		}
	} else if main, features, ok := strings.Cut(value, "."); ok {
		value = main
		b.mainFeatures = strings.TrimSpace(features)
	}
	if owner, features, ok := strings.Cut(b.ownerNoun, "."); ok {
		b.ownerNoun = owner
		b.ownerFeatures = strings.TrimSpace(features)
	}
	// verb blocks read the value without features
	b.value = value

	parts := strings.SplitN(value, "|", 3)
	trimmed := strings.TrimSpace(value)
	switch {
	case len(parts) > 1:
		b.premodifiers = strings.TrimSpace(parts[0])
		b.mainNoun = strings.TrimSpace(parts[1])
		if len(parts) > 2 {
			b.postmodifiers = strings.TrimSpace(parts[2])
		}
	case strings.Contains(trimmed, " "):
		i := strings.LastIndex(trimmed, " ")
		b.premodifiers = strings.TrimSpace(trimmed[:i])
		b.mainNoun = strings.TrimSpace(trimmed[i:])
	default:
		b.mainNoun = trimmed
	}
	return b
}

func (b *inputBlock) String() string {
	return fmt.Sprintf("block(%s: %q)", b.kind, b.value)
}

// findBlocks returns every {...} block of a clause in order.
func findBlocks(clause string) ([]*inputBlock, error) {
	if strings.Count(clause, "{") != strings.Count(clause, "}") {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnbalancedBraces, clause)
	}
	var blocks []*inputBlock
	for rest := clause; ; {
		open := strings.Index(rest, "{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			return nil, fmt.Errorf("%w: %q", entity.ErrUnbalancedBraces, clause)
		}
		blocks = append(blocks, newInputBlock(rest[open:open+end+1]).parse())
		rest = rest[open+end+1:]
	}
	return blocks, nil
}

// splitSentences splits after "." or "?" followed by whitespace, except
// after abbreviations such as "e.g." or "Mr.".
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 1; i < len(text); i++ {
		if !isSpace(text[i]) || (text[i-1] != '.' && text[i-1] != '?') {
			continue
		}
		if isAbbreviation(text[:i]) {
			continue
		}
		out = append(out, text[start:i])
		start = i + 1
	}
	return append(out, text[start:])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWord(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isAbbreviation matches the endings \w.\w. and [A-Z][a-z]. of prefix.
func isAbbreviation(prefix string) bool {
	n := len(prefix)
	if n >= 4 && isWord(prefix[n-4]) && prefix[n-3] == '.' && isWord(prefix[n-2]) {
		return true
	}
	if n >= 3 && prefix[n-3] >= 'A' && prefix[n-3] <= 'Z' && prefix[n-2] >= 'a' && prefix[n-2] <= 'z' && prefix[n-1] == '.' {
		return true
	}
	return false
}

// splitSubclauses splits on "|" separators that have a block to their
// right, or else before every (ghost) subject block.
func splitSubclauses(sentence string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(sentence); i++ {
		if sentence[i] != '|' {
			continue
		}
		rest := sentence[i+1:]
		open, end := strings.Index(rest, "{"), strings.Index(rest, "}")
		if open >= 0 && (end < 0 || open < end) {
			parts = append(parts, sentence[start:i])
			start = i + 1
		}
	}
	parts = append(parts, sentence[start:])
	if len(parts) > 1 {
		return dropTrailingEmpty(parts)
	}

	parts = parts[:0]
	start = 0
	for _, loc := range subjectBlockStart.FindAllStringIndex(sentence, -1) {
		if loc[0] == 0 {
			continue
		}
		parts = append(parts, sentence[start:loc[0]])
		start = loc[0]
	}
	return append(parts, sentence[start:])
}

func dropTrailingEmpty(parts []string) []string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

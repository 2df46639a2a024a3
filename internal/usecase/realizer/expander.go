package realizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eslsoft/expreal/internal/entity"
)

const (
	argumentSigil = "$"
	variableSigil = "%"

	speakerVariable  = "speaker"
	listenerVariable = "listener"
	argumentVariable = "argument"

	switchDialogTag = "#switchDialog"
)

// separators terminate a $ or % identifier.
const separators = "{ ,.:;!?…\"-'}\u00a0"

// variableAt returns the identifier following the sigil at idx.
func variableAt(text string, idx int) string {
	rest := text[idx+1:]
	if end := strings.IndexAny(rest, separators); end >= 0 {
		return rest[:end]
	}
	return rest
}

// indexVariable returns the index of the first reference to target that
// ends at a separator or at the end of text, or -1.
func indexVariable(text, target string) int {
	for from := 0; from <= len(text); {
		i := strings.Index(text[from:], target)
		if i < 0 {
			return -1
		}
		at := from + i
		end := at + len(target)
		if end == len(text) {
			return at
		}
		if next, _ := utf8.DecodeRuneInString(text[end:]); strings.ContainsRune(separators, next) {
			return at
		}
		from = at + 1
	}
	return -1
}

// replaceVariable replaces every reference to target. Longer identifiers
// sharing its prefix are left alone.
func replaceVariable(text, target, replacement string) string {
	var b strings.Builder
	for {
		i := indexVariable(text, target)
		if i < 0 {
			break
		}
		b.WriteString(text[:i])
		b.WriteString(replacement)
		text = text[i+len(target):]
	}
	b.WriteString(text)
	return b.String()
}

// enter bounds template recursion. It reports false once the configured
// depth is exceeded.
func (r *realizer) enter(text string) bool {
	if r.depth >= r.maxDepth {
		r.log.WithError(entity.ErrCyclicExpansion).Errorf("expansion deeper than %d at %q", r.maxDepth, text)
		return false
	}
	r.depth++
	return true
}

func (r *realizer) leave() { r.depth-- }

// referent resolves a $ identifier to its token: the speaker or listener
// id, a person id, or an argument value.
func (r *realizer) referent(name string, c *entity.Context) (string, bool) {
	switch name {
	case speakerVariable:
		if c.Speaker() != nil {
			return c.Speaker().ID, true
		}
	case listenerVariable:
		if c.Listener() != nil {
			return c.Listener().ID, true
		}
	}
	if p, ok := c.Person(name); ok {
		return p.ID, true
	}
	if a, ok := c.Argument(name); ok {
		return a.Value, true
	}
	return "", false
}

// expandDollar substitutes argument references. Speaker and listener are
// deferred to the % pass, everything else is selected and expanded now.
func (r *realizer) expandDollar(text string, c *entity.Context) string {
	if !r.enter(text) {
		return text
	}
	defer r.leave()

	for cursor := 0; cursor < len(text); {
		i := strings.Index(text[cursor:], argumentSigil)
		if i < 0 {
			break
		}
		at := cursor + i
		name := variableAt(text, at)
		target := argumentSigil + name

		token, ok := r.referent(name, c)
		if !ok {
			r.log.WithError(entity.ErrUnknownVariable).Debugf("%s is not an argument, trying %s%s", target, variableSigil, name)
			text = r.expandPercent(strings.ReplaceAll(text, argumentSigil, variableSigil), c)
			cursor = at + len(name)
			continue
		}

		if name == speakerVariable || name == listenerVariable {
			replacement := variableSigil + token
			text = replaceVariable(text, target, replacement)
			cursor = at + len(replacement)
			continue
		}

		r.mentions.update(token)
		replacement := r.expandNested(r.selector.Select(token, c), c)
		if replacement == "" {
			replacement = token
		}
		text, cursor = r.substituteArgument(text, at, target, replacement)
	}
	return text
}

// expandNested expands the references of a selected template.
func (r *realizer) expandNested(text string, c *entity.Context) string {
	if !strings.Contains(text, argumentSigil) {
		return text
	}
	for _, name := range []string{argumentVariable, speakerVariable, listenerVariable} {
		if strings.Contains(text, argumentSigil+name) {
			return r.expandDollar(text, c)
		}
	}
	return r.expandPercent(strings.ReplaceAll(text, argumentSigil, variableSigil), c)
}

// substituteArgument replaces the reference at `at` and every later one,
// contracting French prepositions. It returns the text and the end of the
// first replacement.
func (r *realizer) substituteArgument(text string, at int, target, replacement string) (string, int) {
	var b strings.Builder
	head, rest := text[:at], text[at:]
	end := -1
	for {
		before, first := r.contract(head, replacement)
		b.WriteString(before)
		b.WriteString(first)
		if end < 0 {
			end = b.Len()
		}
		rest = rest[len(target):]
		i := indexVariable(rest, target)
		if i < 0 {
			break
		}
		head, rest = rest[:i], rest[i:]
	}
	b.WriteString(rest)
	return b.String(), end
}

// contract fuses a French preposition ending head with the article that
// starts replacement.
func (r *realizer) contract(head, replacement string) (string, string) {
	if r.language != entity.LanguageFrench {
		return head, replacement
	}
	switch {
	case strings.HasSuffix(head, " de ") && elides(replacement):
		return strings.TrimSuffix(head, "de ") + "d'", replacement
	case strings.HasSuffix(head, " à ") && strings.HasPrefix(replacement, "le "):
		return strings.TrimSuffix(head, "à ") + "au ", replacement[len("le "):]
	case strings.HasSuffix(head, " à ") && strings.HasPrefix(replacement, "les "):
		return strings.TrimSuffix(head, "à ") + "aux ", replacement[len("les "):]
	}
	return head, replacement
}

// elides reports text starting with a vowel or an isolated y.
func elides(text string) bool {
	if strings.HasPrefix(text, "y ") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text)
	return strings.ContainsRune("aeiouéèêëàâîïôûœ", unicode.ToLower(r))
}

// expandPercent substitutes variable references with their interpreted
// templates. Unresolvable variables are left in place.
func (r *realizer) expandPercent(text string, c *entity.Context) string {
	for cursor := 0; cursor < len(text); {
		i := strings.Index(text[cursor:], variableSigil)
		if i < 0 {
			break
		}
		at := cursor + i
		name := variableAt(text, at)
		if name == "" {
			r.log.WithError(entity.ErrEmptyVariable).Debugf("stray %s in %q", variableSigil, text)
			break
		}

		template := r.resolveVariable(name, c)
		if template == "" {
			cursor = at + len(variableSigil) + len(name)
			continue
		}
		replacement := r.interpret(template, c)
		text = text[:at] + replaceVariable(text[at:], variableSigil+name, replacement)
		cursor = at + len(replacement)
		r.mentions.update(name)
	}
	return text
}

func (r *realizer) resolveVariable(name string, c *entity.Context) string {
	switch {
	case name == speakerVariable && c.Speaker() != nil:
		return r.selector.Select(c.Speaker().ID, c)
	case name == listenerVariable && c.Listener() != nil:
		return r.selector.Select(c.Listener().ID, c)
	}
	if p, ok := c.PersonByRealisedName(name); ok {
		return p.RealisedName(r.language)
	}
	if a, ok := c.Argument(name); ok {
		return r.selector.Select(a.Value, c)
	}
	return r.selector.Select(name, c)
}

// switchDialog swaps speaker and listener for a turn starting with the
// #switchDialog tag and strips the tag.
func switchDialog(text string, c *entity.Context) string {
	if !strings.HasPrefix(text, switchDialogTag) {
		return text
	}
	c.SwapSpeakerListener()
	return strings.TrimPrefix(strings.TrimPrefix(text, switchDialogTag), " ")
}

package entity

import "strings"

// LongDistance is the number of sentences after which a re-mention is
// realised as a definite description rather than a pronoun.
const LongDistance = 2

// MentionedEntity tracks how long ago an entity was last mentioned.
type MentionedEntity struct {
	Key      string
	Name     string
	Gender   string
	Number   string
	Distance int
}

// NewMentionedEntity derives the name from the key: the part before "<"
// without the variable sigil.
func NewMentionedEntity(key string, distance int) *MentionedEntity {
	name, _, _ := strings.Cut(key, "<")
	return &MentionedEntity{
		Key:      key,
		Name:     strings.ReplaceAll(name, "%", ""),
		Distance: distance,
	}
}

// MentionKey builds the tracker key main + "<" + owner.
func MentionKey(main, owner string) string {
	return main + "<" + owner
}

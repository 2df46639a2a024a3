package repository

import (
	"context"

	"github.com/eslsoft/expreal/internal/entity"
)

// ListLexiconQuery lists the entries of one language. Filter is a CEL
// expression over language, id, base, category and features.
type ListLexiconQuery struct {
	Pagination
	FilterOrder
	Language entity.Language
}

// LexiconRepository stores lexicon entries per language. Entries keep the
// order they were saved in, which lexicon lookups depend on.
type LexiconRepository interface {
	Save(ctx context.Context, entries []entity.LexiconEntry) error
	Load(ctx context.Context, language entity.Language) ([]entity.LexiconEntry, error)
	List(ctx context.Context, query *ListLexiconQuery) ([]entity.LexiconEntry, int64, error)
	Count(ctx context.Context, language entity.Language) (int64, error)
	Delete(ctx context.Context, language entity.Language) (int64, error)
}

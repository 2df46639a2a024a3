package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/repository"
	"github.com/eslsoft/expreal/internal/surface"
)

// LexiconUsecase moves lexicon entries between YAML documents, the bundled
// data and the lexicon store.
type LexiconUsecase interface {
	// Import stores a YAML lexicon, or the bundled one when r is nil.
	// With replace, the stored entries of the language are removed first.
	Import(ctx context.Context, language entity.Language, r io.Reader, replace bool) (int, error)
	// Export writes the stored entries of a language as YAML.
	Export(ctx context.Context, language entity.Language, w io.Writer) error
	List(ctx context.Context, query *repository.ListLexiconQuery) ([]entity.LexiconEntry, int64, error)
	// Lexicon builds a surface lexicon from the stored entries.
	Lexicon(ctx context.Context, language entity.Language) (*surface.Lexicon, error)
}

const (
	_defaultLimit = int32(20)
	_maxLimit     = int32(10000)
)

type lexiconUsecase struct {
	repo repository.LexiconRepository
}

func NewLexiconUsecase(repo repository.LexiconRepository) LexiconUsecase {
	return &lexiconUsecase{repo: repo}
}

func (u *lexiconUsecase) Import(ctx context.Context, language entity.Language, r io.Reader, replace bool) (int, error) {
	language = entity.NormalizeLanguage(language)
	var (
		entries []entity.LexiconEntry
		err     error
	)
	if r == nil {
		entries, err = surface.BundledEntries(language)
	} else {
		var raw []byte
		if raw, err = io.ReadAll(r); err != nil {
			return 0, fmt.Errorf("read lexicon: %w", err)
		}
		entries, err = surface.DecodeEntries(raw, language)
	}
	if err != nil {
		return 0, err
	}

	if replace {
		if _, err := u.repo.Delete(ctx, language); err != nil {
			return 0, err
		}
	}
	if err := u.repo.Save(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (u *lexiconUsecase) Export(ctx context.Context, language entity.Language, w io.Writer) error {
	language = entity.NormalizeLanguage(language)
	entries, err := u.repo.Load(ctx, language)
	if err != nil {
		return err
	}
	// the document carries the language
	for i := range entries {
		entries[i].Language = entity.LanguageUnspecified
	}
	raw, err := surface.EncodeEntries(language, entries)
	if err != nil {
		return fmt.Errorf("encode lexicon: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write lexicon: %w", err)
	}
	return nil
}

func (u *lexiconUsecase) List(ctx context.Context, query *repository.ListLexiconQuery) ([]entity.LexiconEntry, int64, error) {
	if query == nil {
		query = &repository.ListLexiconQuery{}
	}
	if query.PageNo < 1 {
		query.PageNo = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = _defaultLimit
	}
	if query.PageSize > _maxLimit {
		query.PageSize = _maxLimit
	}
	return u.repo.List(ctx, query)
}

func (u *lexiconUsecase) Lexicon(ctx context.Context, language entity.Language) (*surface.Lexicon, error) {
	language = entity.NormalizeLanguage(language)
	entries, err := u.repo.Load(ctx, language)
	if err != nil {
		return nil, err
	}
	return surface.NewLexicon(language, entries)
}

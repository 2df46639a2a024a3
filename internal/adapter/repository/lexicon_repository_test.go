package repository

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/infrastructure/database"
	"github.com/eslsoft/expreal/internal/repository"
	"github.com/eslsoft/expreal/internal/surface"
)

func newTestRepository(t *testing.T) repository.LexiconRepository {
	t.Helper()
	db, cleanup, err := database.Open("file:" + filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(cleanup)
	return NewLexiconRepository(db)
}

func TestLexiconRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	want, err := surface.BundledEntries(entity.LanguageFrench)
	if err != nil {
		t.Fatalf("bundled entries: %v", err)
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, entity.LanguageFrench)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip changed the entries:\n got %+v\nwant %+v", got[:3], want[:3])
	}

	n, err := repo.Count(ctx, entity.LanguageFrench)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != int64(len(want)) {
		t.Fatalf("expected %d entries, got %d", len(want), n)
	}

	lex, err := surface.NewLexicon(entity.LanguageFrench, got)
	if err != nil {
		t.Fatalf("NewLexicon from stored entries: %v", err)
	}
	if lex.Size() != len(want) {
		t.Fatalf("expected lexicon of %d words, got %d", len(want), lex.Size())
	}
}

func TestLexiconRepository_UpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	entries := []entity.LexiconEntry{
		{ID: "a", Language: entity.LanguageEnglish, Base: "chair", Category: "NOUN"},
		{ID: "b", Language: entity.LanguageEnglish, Base: "table", Category: "NOUN"},
	}
	if err := repo.Save(ctx, entries); err != nil {
		t.Fatalf("Save: %v", err)
	}
	update := []entity.LexiconEntry{
		{ID: "c", Language: entity.LanguageEnglish, Base: "box", Category: "NOUN"},
		{ID: "a", Language: entity.LanguageEnglish, Base: "chair", Category: "NOUN", Forms: map[string]string{"plural": "chairs"}},
	}
	if err := repo.Save(ctx, update); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, entity.LanguageEnglish)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order %v", ids)
	}
	if got[0].Forms["plural"] != "chairs" {
		t.Fatalf("expected updated forms, got %v", got[0].Forms)
	}
}

func TestLexiconRepository_SaveRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)
	err := repo.Save(context.Background(), []entity.LexiconEntry{{ID: "x", Language: entity.LanguageDutch, Category: "NOUN"}})
	if !errors.Is(err, entity.ErrLexiconEntryInvalid) {
		t.Fatalf("expected ErrLexiconEntryInvalid, got %v", err)
	}
}

func TestLexiconRepository_LoadEmpty(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.Load(context.Background(), entity.LanguageDutch); !errors.Is(err, entity.ErrLexiconEmpty) {
		t.Fatalf("expected ErrLexiconEmpty, got %v", err)
	}
}

func TestLexiconRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	entries := []entity.LexiconEntry{
		{ID: "p1", Language: entity.LanguageEnglish, Base: "he", Category: "PRONOUN", Features: map[string]string{"GENDER": "MASCULINE"}},
		{ID: "p2", Language: entity.LanguageEnglish, Base: "she", Category: "PRONOUN", Features: map[string]string{"GENDER": "FEMININE"}},
		{ID: "p3", Language: entity.LanguageEnglish, Base: "herself", Category: "PRONOUN", Features: map[string]string{"GENDER": "FEMININE", "REFLEXIVE": "true"}},
		{ID: "v1", Language: entity.LanguageEnglish, Base: "see", Category: "VERB", Forms: map[string]string{"past": "saw"}},
		{ID: "v2", Language: entity.LanguageEnglish, Base: "sit", Category: "VERB"},
		{ID: "n1", Language: entity.LanguageFrench, Base: "chaise", Category: "NOUN"},
	}
	if err := repo.Save(ctx, entries); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name      string
		query     repository.ListLexiconQuery
		wantIDs   []string
		wantTotal int64
	}{
		{
			name:      "language only",
			query:     repository.ListLexiconQuery{Language: entity.LanguageEnglish},
			wantIDs:   []string{"p1", "p2", "p3", "v1", "v2"},
			wantTotal: 5,
		},
		{
			name:      "category and prefix",
			query:     repository.ListLexiconQuery{FilterOrder: repository.FilterOrder{Filter: "category == 'VERB' && base.startsWith('s')"}},
			wantIDs:   []string{"v1", "v2"},
			wantTotal: 2,
		},
		{
			name: "feature value",
			query: repository.ListLexiconQuery{
				Language:    entity.LanguageEnglish,
				FilterOrder: repository.FilterOrder{Filter: "features.GENDER == 'FEMININE'", OrderBy: "base desc"},
			},
			wantIDs:   []string{"p2", "p3"},
			wantTotal: 2,
		},
		{
			name:      "has feature",
			query:     repository.ListLexiconQuery{FilterOrder: repository.FilterOrder{Filter: "has(features.REFLEXIVE)"}},
			wantIDs:   []string{"p3"},
			wantTotal: 1,
		},
		{
			name:      "filter language wins",
			query:     repository.ListLexiconQuery{Language: entity.LanguageEnglish, FilterOrder: repository.FilterOrder{Filter: "language == 'fr'"}},
			wantIDs:   []string{"n1"},
			wantTotal: 1,
		},
		{
			name: "paged",
			query: repository.ListLexiconQuery{
				Language:    entity.LanguageEnglish,
				Pagination:  repository.Pagination{PageNo: 2, PageSize: 2},
				FilterOrder: repository.FilterOrder{Filter: "id in ['p1', 'p2', 'p3', 'v1']"},
			},
			wantIDs:   []string{"p3", "v1"},
			wantTotal: 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, &tc.query)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.ID
			}
			if !reflect.DeepEqual(ids, tc.wantIDs) {
				t.Fatalf("expected %v, got %v", tc.wantIDs, ids)
			}
			if total != tc.wantTotal {
				t.Fatalf("expected total %d, got %d", tc.wantTotal, total)
			}
		})
	}

	if _, _, err := repo.List(ctx, &repository.ListLexiconQuery{FilterOrder: repository.FilterOrder{Filter: "lemma == 'x'"}}); err == nil {
		t.Fatalf("expected error for unknown filter field")
	}
}

func TestLexiconRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	if err := repo.Save(ctx, []entity.LexiconEntry{
		{ID: "a", Language: entity.LanguageDutch, Base: "stoel", Category: "NOUN"},
		{ID: "a", Language: entity.LanguageEnglish, Base: "chair", Category: "NOUN"},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	n, err := repo.Delete(ctx, entity.LanguageDutch)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one deleted row, got %d", n)
	}
	if c, _ := repo.Count(ctx, entity.LanguageEnglish); c != 1 {
		t.Fatalf("other languages must stay, got %d", c)
	}
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/repository"
	"github.com/eslsoft/expreal/pkg/filterexpr"
)

type lexiconRepository struct {
	db *sql.DB
}

// NewLexiconRepository returns a sqlite-backed lexicon repository. The
// schema must already exist (see database.Migrate).
func NewLexiconRepository(db *sql.DB) repository.LexiconRepository {
	return &lexiconRepository{db: db}
}

const lexiconColumns = "language, id, base, category, features, forms"

// Save upserts entries. New entries are appended after the ones already
// stored for their language; updated entries keep their position.
func (r *lexiconRepository) Save(ctx context.Context, entries []entity.LexiconEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lexicon save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO lexicon_entries (language, id, position, base, category, features, forms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (language, id) DO UPDATE SET
			base = excluded.base,
			category = excluded.category,
			features = excluded.features,
			forms = excluded.forms`)
	if err != nil {
		return fmt.Errorf("prepare lexicon save: %w", err)
	}
	defer stmt.Close()

	next := map[entity.Language]int64{}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		pos, ok := next[entry.Language]
		if !ok {
			if err := tx.QueryRowContext(ctx,
				"SELECT COALESCE(MAX(position) + 1, 0) FROM lexicon_entries WHERE language = ?",
				string(entry.Language)).Scan(&pos); err != nil {
				return fmt.Errorf("next lexicon position: %w", err)
			}
		}
		next[entry.Language] = pos + 1

		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("%s-%06d", entry.Language.Code(), pos)
		}
		features, err := encodeMap(entry.Features)
		if err != nil {
			return fmt.Errorf("encode features of %q: %w", entry.Base, err)
		}
		forms, err := encodeMap(entry.Forms)
		if err != nil {
			return fmt.Errorf("encode forms of %q: %w", entry.Base, err)
		}
		if _, err := stmt.ExecContext(ctx, string(entry.Language), id, pos, entry.Base, entry.Category, features, forms); err != nil {
			return fmt.Errorf("save lexicon entry %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lexicon save: %w", err)
	}
	return nil
}

func (r *lexiconRepository) Load(ctx context.Context, language entity.Language) ([]entity.LexiconEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+lexiconColumns+" FROM lexicon_entries WHERE language = ? ORDER BY position",
		string(language))
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrLexiconEmpty, language)
	}
	return entries, nil
}

// listLexiconParams receives the CEL filter of a ListLexiconQuery.
type listLexiconParams struct {
	Language    *string
	ID          *string
	IDs         []string
	Base        *string
	BasePrefix  *string
	Category    *string
	Categories  []string
	Features    map[string]string
	HasFeatures []string
	OrderBy     string
}

func (r *lexiconRepository) List(ctx context.Context, query *repository.ListLexiconQuery) ([]entity.LexiconEntry, int64, error) {
	var p listLexiconParams
	if err := filterexpr.Bind(query, &p, listLexiconSchema); err != nil {
		return nil, 0, err
	}
	if p.Language == nil && query.Language != entity.LanguageUnspecified {
		p.Language = lo.ToPtr(string(query.Language))
	}

	where, args := p.where()
	limit := int64(-1)
	if query.PageSize > 0 {
		limit = int64(query.PageSize)
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+lexiconColumns+" FROM lexicon_entries"+where+" ORDER BY "+p.OrderBy+" LIMIT ? OFFSET ?",
		append(args, limit, int64(query.Offset()))...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lexicon: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list lexicon: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lexicon_entries"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lexicon: %w", err)
	}
	return entries, total, nil
}

func (r *lexiconRepository) Count(ctx context.Context, language entity.Language) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lexicon_entries WHERE language = ?", string(language)).Scan(&total); err != nil {
		return 0, fmt.Errorf("count lexicon: %w", err)
	}
	return total, nil
}

func (r *lexiconRepository) Delete(ctx context.Context, language entity.Language) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM lexicon_entries WHERE language = ?", string(language))
	if err != nil {
		return 0, fmt.Errorf("delete lexicon: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete lexicon: %w", err)
	}
	return n, nil
}

// where renders the bound filter as a SQL WHERE clause.
func (p listLexiconParams) where() (string, []any) {
	var conds []string
	var args []any
	eq := func(column string, value *string) {
		if value != nil {
			conds = append(conds, column+" = ?")
			args = append(args, *value)
		}
	}
	in := func(column string, values []string) {
		if len(values) > 0 {
			conds = append(conds, column+" IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")+")")
			args = append(args, lo.ToAnySlice(values)...)
		}
	}

	eq("language", p.Language)
	eq("id", p.ID)
	in("id", p.IDs)
	eq("base", p.Base)
	if p.BasePrefix != nil {
		conds = append(conds, "instr(base, ?) = 1")
		args = append(args, *p.BasePrefix)
	}
	eq("category", p.Category)
	in("category", p.Categories)
	for _, key := range lo.Keys(p.Features) {
		conds = append(conds, "json_extract(features, ?) = ?")
		args = append(args, featurePath(key), p.Features[key])
	}
	for _, key := range p.HasFeatures {
		conds = append(conds, "json_extract(features, ?) IS NOT NULL")
		args = append(args, featurePath(key))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func featurePath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, "") + `"`
}

func scanEntries(rows *sql.Rows) ([]entity.LexiconEntry, error) {
	var entries []entity.LexiconEntry
	for rows.Next() {
		var (
			e              entity.LexiconEntry
			lang           string
			features, form string
		)
		if err := rows.Scan(&lang, &e.ID, &e.Base, &e.Category, &features, &form); err != nil {
			return nil, err
		}
		e.Language = entity.Language(lang)
		var err error
		if e.Features, err = decodeMap(features); err != nil {
			return nil, fmt.Errorf("features of %q: %w", e.ID, err)
		}
		if e.Forms, err = decodeMap(form); err != nil {
			return nil, fmt.Errorf("forms of %q: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func encodeMap(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	return string(raw), err
}

func decodeMap(raw string) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// chunkRepo implements ChunkRepo with a plain table for metadata and an
// FTS5 table keyed by the same rowid for ranking.
type chunkRepo struct {
	drv *entsql.Driver
}

// searchSQL is raw because MATCH and bm25() have no builder equivalent.
const searchSQL = `SELECT c.id, c.source, c.page, c.position, c.content
FROM chunks_fts f JOIN chunks c ON c.id = f.rowid
WHERE chunks_fts MATCH ?
ORDER BY bm25(chunks_fts), c.id
LIMIT ?`

func (r *chunkRepo) ReplaceSource(ctx context.Context, source string, chunks []Chunk) (err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var res sql.Result
	if err = tx.Exec(ctx,
		`DELETE FROM chunks_fts WHERE rowid IN (SELECT id FROM chunks WHERE source = ?)`,
		[]any{source}, &res); err != nil {
		return fmt.Errorf("clear index for %s: %w", source, err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableChunks).
		Where(entsql.EQ("source", source)).
		Query()
	if err = tx.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("clear chunks for %s: %w", source, err)
	}

	for _, c := range chunks {
		var page any
		if c.Page != nil {
			page = *c.Page
		}
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(tableChunks).
			Columns("source", "page", "position", "content").
			Values(source, page, c.Position, c.Content).
			Query()
		if err = tx.Exec(ctx, query, args, &res); err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
		var id int64
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("chunk id: %w", err)
		}
		if err = tx.Exec(ctx,
			`INSERT INTO chunks_fts (rowid, content) VALUES (?, ?)`,
			[]any{id, c.Content}, &res); err != nil {
			return fmt.Errorf("index chunk: %w", err)
		}
	}

	return tx.Commit()
}

func (r *chunkRepo) Search(ctx context.Context, query string, k int) ([]Chunk, error) {
	match := MatchExpression(query)
	if match == "" || k <= 0 {
		return nil, nil
	}

	var rows entsql.Rows
	if err := r.drv.Query(ctx, searchSQL, []any{match, k}, &rows); err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	defer rows.Close()

	var out []Chunk
	for rows.Next() {
		var c Chunk
		var page sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Source, &page, &c.Position, &c.Content); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		if page.Valid {
			p := int(page.Int64)
			c.Page = &p
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *chunkRepo) Sources(ctx context.Context) ([]SourceSummary, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("source", entsql.Count("*")).
		From(entsql.Table(tableChunks)).
		GroupBy("source").
		OrderBy("source").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var out []SourceSummary
	for rows.Next() {
		var s SourceSummary
		if err := rows.Scan(&s.Source, &s.Chunks); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *chunkRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(tableChunks)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}

// MatchExpression turns free text into an FTS5 query that ORs every
// alphanumeric token, quoted so FTS5 operators in the input are inert.
// It returns "" when the text has no tokens.
func MatchExpression(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, `"`+f+`"`)
	}
	return strings.Join(terms, " OR ")
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var attemptColumns = []string{
	"id", "sequence", "timestamp", "quiz_id", "topic", "question_count",
	"total_score", "max_score", "percentage", "report_path",
	"quiz_json", "result_json",
}

type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *attemptRepo) Save(ctx context.Context, data AttemptData) (string, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	id := uuid.NewString()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttempts).
		Columns(attemptColumns...).
		Values(
			id,
			seqNum,
			formatTime(time.Now()),
			data.QuizID,
			data.Topic,
			data.QuestionCount,
			data.TotalScore,
			data.MaxScore,
			data.Percentage,
			data.ReportPath,
			string(data.QuizJSON),
			string(data.ResultJSON),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return "", fmt.Errorf("save quiz attempt: %w", err)
	}
	return id, nil
}

func (r *attemptRepo) List(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(tableAttempts)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.query(ctx, sel)
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*AttemptRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(tableAttempts)).
		Where(entsql.HasPrefix("id", id)).
		Limit(2)

	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	switch len(recs) {
	case 0:
		return nil, nil
	case 1:
		return &recs[0], nil
	default:
		return nil, fmt.Errorf("attempt id prefix %q is ambiguous", id)
	}
}

func (r *attemptRepo) query(ctx context.Context, sel *entsql.Selector) ([]AttemptRecord, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		var ts, quizJSON, resultJSON string
		err := rows.Scan(
			&rec.ID,
			&rec.Sequence,
			&ts,
			&rec.QuizID,
			&rec.Topic,
			&rec.QuestionCount,
			&rec.TotalScore,
			&rec.MaxScore,
			&rec.Percentage,
			&rec.ReportPath,
			&quizJSON,
			&resultJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		rec.Timestamp = parseTime(ts)
		rec.QuizJSON = []byte(quizJSON)
		rec.ResultJSON = []byte(resultJSON)
		out = append(out, rec)
	}
	return out, rows.Err()
}

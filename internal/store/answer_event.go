package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on SQLite.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	correct := 0
	if data.Correct {
		correct = 1
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "mode", "item", "correct").
		Values(seqNum, time.Now().UTC().Format(time.RFC3339Nano), data.SessionID, data.Mode, data.Item, correct).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) ItemStats(ctx context.Context, mode string) ([]ItemStat, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"item",
			entsql.As(entsql.Count("*"), "attempts"),
			entsql.As(entsql.Sum("correct"), "correct_count"),
		).
		From(entsql.Table(answerEventsTable)).
		GroupBy("item")
	if mode != "" {
		sel = sel.Where(entsql.EQ("mode", mode))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query item stats: %w", err)
	}
	defer rows.Close()

	var stats []ItemStat
	for rows.Next() {
		var st ItemStat
		if err := rows.Scan(&st.Item, &st.Attempts, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan item stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item stats: %w", err)
	}

	sort.Slice(stats, func(i, j int) bool {
		ai, aj := stats[i].Accuracy(), stats[j].Accuracy()
		if ai != aj {
			return ai < aj
		}
		return stats[i].Item < stats[j].Item
	})
	return stats, nil
}

func (r *eventRepo) Totals(ctx context.Context) (Totals, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.As(entsql.Count("*"), "attempts"),
			entsql.As("COALESCE(SUM(`correct`), 0)", "correct_count"),
			entsql.As(entsql.Count(entsql.Distinct("session_id")), "sessions"),
		).
		From(entsql.Table(answerEventsTable)).
		Query()

	var t Totals
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.Attempts, &t.Correct, &t.Sessions); err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

func (r *eventRepo) DeleteAll(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(answerEventsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete answer events: %w", err)
	}
	return nil
}

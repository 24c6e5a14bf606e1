package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/mathrooms/internal/profile"
)

type eventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendMasteryEvent(ctx context.Context, data MasteryEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mastery_events (player_key, training_id, difficulty, time_pressure, from_level, to_level, session_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.Key(data.Player),
		data.TrainingID,
		data.Difficulty,
		data.TimePressure,
		data.FromLevel,
		data.ToLevel,
		data.SessionID,
		r.clock().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save mastery event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentMasteryEvents(ctx context.Context, player string, limit int) ([]MasteryEvent, error) {
	query := `SELECT id, player_key, training_id, difficulty, time_pressure, from_level, to_level, session_id, created_at
		FROM mastery_events
		WHERE (? = '' OR player_key = ?)
		ORDER BY id DESC`
	key := ""
	if player != "" {
		key = profile.Key(player)
	}
	args := []any{key, key}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mastery events: %w", err)
	}
	defer rows.Close()

	var out []MasteryEvent
	for rows.Next() {
		var (
			e       MasteryEvent
			created string
		)
		if err := rows.Scan(&e.ID, &e.PlayerKey, &e.TrainingID, &e.Difficulty, &e.TimePressure,
			&e.FromLevel, &e.ToLevel, &e.SessionID, &created); err != nil {
			return nil, fmt.Errorf("scan mastery event: %w", err)
		}
		e.Player = e.PlayerKey
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mastery events: %w", err)
	}
	return out, nil
}

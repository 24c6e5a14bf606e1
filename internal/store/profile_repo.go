package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mathrooms/internal/profile"
)

// ProfileRepo stores profiles as JSON records in the profiles table.
// It implements profile.Repo.
type ProfileRepo struct {
	db *sql.DB
}

var _ profile.Repo = (*ProfileRepo)(nil)

func (r *ProfileRepo) Load(ctx context.Context, name string) (*profile.Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE key = ?`, profile.Key(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.New(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %q: %w", profile.Key(name), err)
	}
	p, err := profile.Decode([]byte(data), name)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", profile.Key(name), err)
	}
	return p, nil
}

// Save upserts the full profile record.
func (r *ProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	data, err := profile.Encode(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (key, name, data, total_score, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			total_score = excluded.total_score,
			updated_at = excluded.updated_at`,
		p.Key(), p.Name, string(data), p.TotalScore(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Key(), err)
	}
	return nil
}

// List skips records that cannot be decoded.
func (r *ProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, data FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*profile.Profile
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p, err := profile.Decode([]byte(data), key)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	profile.SortByScore(out)
	return out, nil
}

func (r *ProfileRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE key = ?`, profile.Key(name))
	if err != nil {
		return fmt.Errorf("delete %q: %w", profile.Key(name), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", profile.Key(name), err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", profile.Key(name), profile.ErrNotFound)
	}
	return nil
}

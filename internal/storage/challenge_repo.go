package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
)

const latestKey = "latest_challenge_id"

// ChallengeRepo persists challenges in SQLite and implements engine.Store.
//
// Serializing through JSON at this boundary doubles as the deep-copy
// contract: callers never alias the stored representation. A row whose
// payload cannot be decoded is treated as absent rather than failing the
// read; availability wins over surfacing corruption.
type ChallengeRepo struct {
	db *sql.DB
}

func NewChallengeRepo(db *sql.DB) *ChallengeRepo {
	return &ChallengeRepo{db: db}
}

func (r *ChallengeRepo) Save(ctx context.Context, ch *engine.Challenge) error {
	days, err := json.Marshal(ch.Days)
	if err != nil {
		return fmt.Errorf("challenge marshal days: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO challenges (id, title, prompt, start_at, timezone, days, xp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			prompt = excluded.prompt,
			start_at = excluded.start_at,
			timezone = excluded.timezone,
			days = excluded.days,
			xp = excluded.xp,
			updated_at = excluded.updated_at
	`, ch.ID, ch.Title, ch.Prompt, ch.StartAt.UTC().Format(time.RFC3339Nano), ch.Timezone,
		string(days), ch.XP, ch.CreatedAt.UTC().Format(time.RFC3339Nano), ch.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("challenge upsert: %w", err)
	}

	return r.setLatest(ctx, ch.ID)
}

func (r *ChallengeRepo) Get(ctx context.Context, id string) (*engine.Challenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, prompt, start_at, timezone, days, xp, created_at, updated_at
		FROM challenges
		WHERE id = ?
	`, id)
	ch, err := scanChallenge(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("challenge get: %w", err)
	}
	return ch, nil
}

func (r *ChallengeRepo) List(ctx context.Context) ([]*engine.Challenge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, prompt, start_at, timezone, days, xp, created_at, updated_at
		FROM challenges
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("challenge list: %w", err)
	}
	defer rows.Close()

	var out []*engine.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("challenge list scan: %w", err)
		}
		if ch == nil {
			continue
		}
		out = append(out, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("challenge list rows: %w", err)
	}
	return out, nil
}

func (r *ChallengeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = ?`, id); err != nil {
		return fmt.Errorf("challenge delete: %w", err)
	}

	latest, err := r.LatestID(ctx)
	if err != nil {
		return err
	}
	if latest != id {
		return nil
	}

	// The deleted record was the latest: fall back to the most recently
	// inserted remaining one, or clear the pointer entirely.
	row := r.db.QueryRowContext(ctx, `SELECT id FROM challenges ORDER BY rowid DESC LIMIT 1`)
	var next string
	if err := row.Scan(&next); err != nil {
		if err == sql.ErrNoRows {
			_, err = r.db.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, latestKey)
			if err != nil {
				return fmt.Errorf("meta clear latest: %w", err)
			}
			return nil
		}
		return fmt.Errorf("challenge latest fallback: %w", err)
	}
	return r.setLatest(ctx, next)
}

func (r *ChallengeRepo) LatestID(ctx context.Context) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, latestKey)
	var id string
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("meta get latest: %w", err)
	}
	return id, nil
}

func (r *ChallengeRepo) setLatest(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, latestKey, id)
	if err != nil {
		return fmt.Errorf("meta set latest: %w", err)
	}
	return nil
}

func (r *ChallengeRepo) GenerationsUsed(ctx context.Context, weekKey string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT used FROM generation_usage WHERE week_key = ?`, weekKey)
	var used int
	if err := row.Scan(&used); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("generation usage get: %w", err)
	}
	return used, nil
}

func (r *ChallengeRepo) IncrementGenerations(ctx context.Context, weekKey string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO generation_usage (week_key, used) VALUES (?, 1)
		ON CONFLICT(week_key) DO UPDATE SET used = used + 1
	`, weekKey)
	if err != nil {
		return fmt.Errorf("generation usage increment: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanChallenge decodes one challenge row. A row with an undecodable days
// payload or timestamp returns (nil, nil): the record is treated as absent.
func scanChallenge(row rowScanner) (*engine.Challenge, error) {
	var (
		ch        engine.Challenge
		startAt   string
		daysJSON  string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&ch.ID, &ch.Title, &ch.Prompt, &startAt, &ch.Timezone, &daysJSON, &ch.XP, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if ch.StartAt, err = time.Parse(time.RFC3339Nano, startAt); err != nil {
		return nil, nil
	}
	if ch.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, nil
	}
	if ch.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(daysJSON), &ch.Days); err != nil {
		return nil, nil
	}

	engine.EnsureDueAt(&ch)
	return &ch, nil
}

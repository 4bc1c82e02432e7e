package repository

import (
	"context"

	"fieldsales-backend/internal/db"
	"fieldsales-backend/internal/domain"
)

// PreferenceRepository is the key-value persistence boundary for per-user
// UI state (theme, font, dashboard defaults). The UI never touches
// storage directly; it loads the map at startup and saves through here.
type PreferenceRepository struct {
	DB *db.Postgres
}

func (r PreferenceRepository) GetAll(ctx context.Context, userID int64) (map[string]string, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT key, value
		FROM preferences
		WHERE user_id=$1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r PreferenceRepository) Set(ctx context.Context, userID int64, key, value string) (*domain.Preference, error) {
	var p domain.Preference
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO preferences (user_id, key, value, updated_at)
		VALUES ($1,$2,$3, now())
		ON CONFLICT (user_id, key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()
		RETURNING user_id, key, value, updated_at
	`, userID, key, value).Scan(&p.UserID, &p.Key, &p.Value, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

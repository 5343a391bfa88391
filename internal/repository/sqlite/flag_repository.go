package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/repository"
)

type flagRepository struct {
	db *sql.DB
}

// NewFlagRepository creates a new FlagRepository implementation
func NewFlagRepository(db *sql.DB) repository.FlagRepository {
	return &flagRepository{db: db}
}

func (r *flagRepository) Get(ctx context.Context, deviceID, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flag_repo")
	log.Debug("getting flag: key=%s", key)

	var value string
	err := r.db.QueryRowContext(ctx, `
SELECT value
FROM session_flags
WHERE device_id = ? AND key = ?
`, deviceID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get flag %s: %v", key, err)
		return "", false, err
	}
	return value, true, nil
}

func (r *flagRepository) Set(ctx context.Context, deviceID, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("flag_repo")
	log.Debug("setting flag: key=%s", key)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO session_flags (device_id, key, value)
VALUES (?, ?, ?)
ON CONFLICT(device_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, deviceID, key, value)
	if err != nil {
		log.Error("failed to set flag %s: %v", key, err)
	}
	return err
}

func (r *flagRepository) Delete(ctx context.Context, deviceID, key string) error {
	log := logger.FromContext(ctx).WithPrefix("flag_repo")
	log.Debug("deleting flag: key=%s", key)

	_, err := r.db.ExecContext(ctx, `DELETE FROM session_flags WHERE device_id = ? AND key = ?`, deviceID, key)
	if err != nil {
		log.Error("failed to delete flag %s: %v", key, err)
	}
	return err
}

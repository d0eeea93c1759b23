package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spystrach/interimBot/internal/domain"
)

// SQLiteMissionRepo implements MissionRepo using a SQLite database.
type SQLiteMissionRepo struct {
	db *sql.DB
}

// NewSQLiteMissionRepo creates a new SQLiteMissionRepo.
func NewSQLiteMissionRepo(db *sql.DB) *SQLiteMissionRepo {
	return &SQLiteMissionRepo{db: db}
}

func (r *SQLiteMissionRepo) Create(ctx context.Context, m *domain.Mission) error {
	exists, err := r.Exists(ctx, m.Date, false, false)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("date %s: %w", m.Date, ErrDuplicateKey)
	}

	query := `INSERT INTO missions (agency, date, location, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		strings.ToLower(string(m.Agency)),
		strings.ToLower(m.Date),
		strings.ToLower(m.Location),
		strings.ToLower(m.StartTime),
		strings.ToLower(m.EndTime),
	)
	if err != nil {
		return fmt.Errorf("inserting mission: %w", err)
	}
	return nil
}

func (r *SQLiteMissionRepo) Get(ctx context.Context, key string) (*domain.Mission, error) {
	query := `SELECT agency, date, location, start_time, end_time
		FROM missions WHERE date = ?`
	row := r.db.QueryRowContext(ctx, query, key)

	var m domain.Mission
	err := row.Scan(&m.Agency, &m.Date, &m.Location, &m.StartTime, &m.EndTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("mission %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning mission: %w", err)
	}
	return &m, nil
}

func (r *SQLiteMissionRepo) GetAll(ctx context.Context) ([]*domain.Mission, error) {
	query := `SELECT agency, date, location, start_time, end_time
		FROM missions ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing missions: %w", err)
	}
	defer rows.Close()

	var missions []*domain.Mission
	for rows.Next() {
		var m domain.Mission
		if err := rows.Scan(&m.Agency, &m.Date, &m.Location, &m.StartTime, &m.EndTime); err != nil {
			return nil, fmt.Errorf("scanning mission row: %w", err)
		}
		missions = append(missions, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating missions: %w", err)
	}
	return missions, nil
}

// Exists reports whether a mission key matches. The two flags select the
// matching mode: exact, prefix (key*), suffix (*key), or substring when
// both are set.
func (r *SQLiteMissionRepo) Exists(ctx context.Context, key string, prefix, suffix bool) (bool, error) {
	pattern := escapeLike(key)
	if prefix {
		pattern += "%"
	}
	if suffix {
		pattern = "%" + pattern
	}

	query := `SELECT COUNT(*) FROM missions WHERE date LIKE ? ESCAPE '\'`
	var n int
	if err := r.db.QueryRowContext(ctx, query, pattern).Scan(&n); err != nil {
		return false, fmt.Errorf("matching mission key: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteMissionRepo) Update(ctx context.Context, m *domain.Mission) error {
	query := `UPDATE missions SET agency = ?, location = ?, start_time = ?, end_time = ?
		WHERE date = ?`
	res, err := r.db.ExecContext(ctx, query,
		strings.ToLower(string(m.Agency)),
		strings.ToLower(m.Location),
		strings.ToLower(m.StartTime),
		strings.ToLower(m.EndTime),
		m.Date,
	)
	if err != nil {
		return fmt.Errorf("updating mission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating mission: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mission %s: %w", m.Date, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMissionRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE date = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting mission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting mission: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mission %s: %w", key, ErrNotFound)
	}
	return nil
}

// escapeLike neutralizes LIKE wildcards inside a literal key.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

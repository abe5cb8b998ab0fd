package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"telegram-habit-bot/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, postgresDsn string) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(postgresDsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("error pinging pool: %w", err)
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) CreateUser(user model.User) error {
	query := `INSERT INTO users (telegram_id, full_name, username, goals) VALUES ($1, $2, $3, $4)`
	goals, err := marshalGoals(user.Goals)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(context.Background(), query, user.TelegramID, user.FullName, user.Username, goals)
	return err
}

func (s *Storage) GetUser(telegramID int64) (model.User, error) {
	query := `SELECT telegram_id, full_name, username, goals, created_at FROM users WHERE telegram_id = $1`
	return scanUser(s.pool.QueryRow(context.Background(), query, telegramID))
}

func (s *Storage) DeleteUser(telegramID int64) error {
	_, err := s.pool.Exec(context.Background(), `DELETE FROM users WHERE telegram_id = $1`, telegramID)
	return err
}

// SetUserGoals replaces the user's whole goal set and returns the updated user.
func (s *Storage) SetUserGoals(telegramID int64, goals *model.GoalSet) (model.User, error) {
	query := `UPDATE users SET goals = $1 WHERE telegram_id = $2
              RETURNING telegram_id, full_name, username, goals, created_at`
	raw, err := marshalGoals(goals)
	if err != nil {
		return model.User{}, err
	}
	return scanUser(s.pool.QueryRow(context.Background(), query, raw, telegramID))
}

func (s *Storage) AddGoal(telegramID int64, key string, goal model.Goal) (model.User, error) {
	return s.mutateGoals(telegramID, func(gs *model.GoalSet) error {
		gs.Set(key, goal)
		// keep the allocation high-water mark above the key just used
		if suffix, ok := model.CustomSuffix(key); ok && suffix >= gs.NextCustom {
			gs.NextCustom = suffix + 1
		}
		return nil
	})
}

func (s *Storage) UpdateGoalValue(telegramID int64, key string, value int) (model.User, error) {
	return s.mutateGoals(telegramID, func(gs *model.GoalSet) error {
		goal, ok := gs.Get(key)
		if !ok {
			return fmt.Errorf("goal %s not found", key)
		}
		goal.Value = model.IntPtr(value)
		gs.Set(key, goal)
		return nil
	})
}

func (s *Storage) UpdateTrainingGoalType(telegramID int64, goalType model.TrainingGoalType) (model.User, error) {
	return s.mutateGoals(telegramID, func(gs *model.GoalSet) error {
		goal, ok := gs.Get(model.KeyTrainingGoalType)
		if !ok {
			return fmt.Errorf("goal %s not found", model.KeyTrainingGoalType)
		}
		goal.Type = goalType
		gs.Set(model.KeyTrainingGoalType, goal)
		return nil
	})
}

func (s *Storage) DeleteGoal(telegramID int64, key string) (model.User, error) {
	return s.mutateGoals(telegramID, func(gs *model.GoalSet) error {
		if !gs.Delete(key) {
			return fmt.Errorf("goal %s not found", key)
		}
		return nil
	})
}

// mutateGoals runs a read-modify-write of the goals document inside one
// transaction, locking the user row so concurrent edits cannot interleave.
func (s *Storage) mutateGoals(telegramID int64, mutate func(*model.GoalSet) error) (model.User, error) {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT telegram_id, full_name, username, goals, created_at FROM users WHERE telegram_id = $1 FOR UPDATE`
	user, err := scanUser(tx.QueryRow(ctx, query, telegramID))
	if err != nil {
		return model.User{}, err
	}
	if user.Goals == nil {
		user.Goals = &model.GoalSet{}
	}

	if err := mutate(user.Goals); err != nil {
		return model.User{}, err
	}

	raw, err := marshalGoals(user.Goals)
	if err != nil {
		return model.User{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET goals = $1 WHERE telegram_id = $2`, raw, telegramID); err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.User{}, fmt.Errorf("error committing transaction: %w", err)
	}
	return user, nil
}

func (s *Storage) CreateReport(rep model.Report) error {
	fields, err := json.Marshal(rep.Fields)
	if err != nil {
		return fmt.Errorf("error marshaling report fields: %w", err)
	}
	query := `INSERT INTO reports (id, user_telegram_id, created_at, fields) VALUES ($1, $2, $3, $4)`
	_, err = s.pool.Exec(context.Background(), query, rep.ID, rep.UserTelegramID, rep.CreatedAt, fields)
	return err
}

func (s *Storage) DeleteAllReports(telegramID int64) error {
	_, err := s.pool.Exec(context.Background(), `DELETE FROM reports WHERE user_telegram_id = $1`, telegramID)
	return err
}

// GetLastReport returns the user's most recent report, or nil when none exists.
func (s *Storage) GetLastReport(telegramID int64) (*model.Report, error) {
	query := `SELECT id, user_telegram_id, created_at, fields FROM reports
              WHERE user_telegram_id = $1 ORDER BY created_at DESC LIMIT 1`
	rep, err := scanReport(s.pool.QueryRow(context.Background(), query, telegramID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (s *Storage) GetReportsInWindow(telegramID int64, from, to time.Time) ([]model.Report, error) {
	query := `SELECT id, user_telegram_id, created_at, fields FROM reports
              WHERE user_telegram_id = $1 AND created_at >= $2 AND created_at < $3
              ORDER BY created_at`
	rows, err := s.pool.Query(context.Background(), query, telegramID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u   model.User
		raw []byte
	)
	err := row.Scan(&u.TelegramID, &u.FullName, &u.Username, &raw, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if raw != nil {
		u.Goals = &model.GoalSet{}
		if err := json.Unmarshal(raw, u.Goals); err != nil {
			return model.User{}, fmt.Errorf("error unmarshaling goals: %w", err)
		}
	}
	return u, nil
}

func scanReport(row rowScanner) (model.Report, error) {
	var (
		rep model.Report
		raw []byte
	)
	if err := row.Scan(&rep.ID, &rep.UserTelegramID, &rep.CreatedAt, &raw); err != nil {
		return model.Report{}, err
	}
	if err := json.Unmarshal(raw, &rep.Fields); err != nil {
		return model.Report{}, fmt.Errorf("error unmarshaling report fields: %w", err)
	}
	return rep, nil
}

func marshalGoals(gs *model.GoalSet) ([]byte, error) {
	if gs == nil {
		return nil, nil
	}
	raw, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("error marshaling goals: %w", err)
	}
	return raw, nil
}

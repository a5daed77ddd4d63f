package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizforge/quizd/internal/quiz"
)

// SQLStore persists sessions in a sessions table, state serialized as
// JSON. Works against sqlite and postgres via internal/db.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Load(ctx context.Context, id string) (quiz.State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM sessions WHERE id=$1`, id)
	var buf string
	if err := row.Scan(&buf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.State{}, ErrNotFound
		}
		return quiz.State{}, fmt.Errorf("load session: %w", err)
	}
	var st quiz.State
	if err := json.Unmarshal([]byte(buf), &st); err != nil {
		return quiz.State{}, fmt.Errorf("decode session state: %w", err)
	}
	return st, nil
}

func (s *SQLStore) Save(ctx context.Context, id string, st quiz.State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (id,state_json,created_at,updated_at)
		VALUES ($1,$2,$3,$3)
		ON CONFLICT (id) DO UPDATE SET state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		id, string(buf), now)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

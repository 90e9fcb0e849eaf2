package store

import (
	"context"
	"fmt"
	"time"
)

// Task is a deferred unit of work persisted until a worker picks it up.
type Task struct {
	ID        string
	Name      string
	Args      string // JSON-encoded arguments
	RunAt     time.Time
	Done      bool
	Error     string
	CreatedAt time.Time
}

// EnqueueTask persists a deferred task to be run at or after runAt.
func (s *Store) EnqueueTask(ctx context.Context, id, name, args string, runAt time.Time) error {
	query := `
		INSERT INTO tasks (id, name, args, run_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, id, name, args, runAt.Unix()); err != nil {
		return fmt.Errorf("failed to enqueue task %q: %w", name, err)
	}

	return nil
}

// DueTasks retrieves unfinished tasks whose run time has passed, oldest
// first.
func (s *Store) DueTasks(ctx context.Context, now time.Time, limit int) ([]Task, error) {
	query := `
		SELECT id, name, args, run_at, done, COALESCE(error, ''), created_at
		FROM tasks
		WHERE done = 0 AND error IS NULL AND run_at <= ?
		ORDER BY run_at ASC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var runAt, createdAt int64

		if err := rows.Scan(&t.ID, &t.Name, &t.Args, &runAt, &t.Done, &t.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		t.RunAt = time.Unix(runAt, 0)
		t.CreatedAt = time.Unix(createdAt, 0)

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// MarkTaskDone marks a task as completed.
func (s *Store) MarkTaskDone(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET done = 1, error = NULL WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark task done: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}

	return nil
}

// MarkTaskError records a failure for a task. Failed tasks are kept for
// inspection but never retried.
func (s *Store) MarkTaskError(ctx context.Context, id, errMsg string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET error = ? WHERE id = ?", errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark task error: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}

	return nil
}

// CleanupTasks removes completed tasks older than maxAge to prevent
// unbounded growth.
func (s *Store) CleanupTasks(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE done = 1 AND created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup tasks: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

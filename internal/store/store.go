// Package store handles SQLite persistence of imported exercises.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/typecore/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the exercise library.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exercises (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			author TEXT NOT NULL,
			translation TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS exercise_pinyin (
			exercise_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			char TEXT NOT NULL,
			pinyin TEXT NOT NULL,
			PRIMARY KEY (exercise_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// UpsertExercises stores exercises, replacing any with the same id. It returns
// the number of exercises written.
func (s *Store) UpsertExercises(ctx context.Context, exercises []model.Exercise) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	importedAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, ex := range exercises {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO exercises (id, category, title, content, author, translation, imported_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				category = excluded.category,
				title = excluded.title,
				content = excluded.content,
				author = excluded.author,
				translation = excluded.translation,
				imported_at = excluded.imported_at`,
			ex.ID, string(ex.Category), ex.Title, ex.Content, ex.Author, ex.Translation, importedAt,
		); err != nil {
			return 0, err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM exercise_pinyin WHERE exercise_id = ?`, ex.ID); err != nil {
			return 0, err
		}
		for i, p := range ex.Pinyin {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO exercise_pinyin (exercise_id, position, char, pinyin) VALUES (?, ?, ?, ?)`,
				ex.ID, i, p.Char, p.Pinyin,
			); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(exercises), nil
}

// ListExercises returns stored exercises ordered by id. An empty category
// returns every exercise.
func (s *Store) ListExercises(ctx context.Context, category model.Category) ([]model.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, content, author, translation
		FROM exercises
		WHERE (? = '' OR category = ?)
		ORDER BY id ASC`, string(category), string(category))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var exercises []model.Exercise
	index := map[string]int{}
	for rows.Next() {
		var ex model.Exercise
		var cat string
		if err := rows.Scan(&ex.ID, &cat, &ex.Title, &ex.Content, &ex.Author, &ex.Translation); err != nil {
			return nil, err
		}
		ex.Category = model.Category(cat)
		index[ex.ID] = len(exercises)
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, nil
	}
	if err := s.attachPinyin(ctx, exercises, index); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (s *Store) attachPinyin(ctx context.Context, exercises []model.Exercise, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT exercise_id, char, pinyin FROM exercise_pinyin ORDER BY exercise_id, position`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var id string
		var p model.PinyinChar
		if err := rows.Scan(&id, &p.Char, &p.Pinyin); err != nil {
			return err
		}
		idx, ok := index[id]
		if !ok {
			continue
		}
		exercises[idx].Pinyin = append(exercises[idx].Pinyin, p)
	}
	return rows.Err()
}

// DeleteExercise removes an exercise. It reports whether one was removed.
func (s *Store) DeleteExercise(ctx context.Context, id string) (deleted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM exercise_pinyin WHERE exercise_id = ?`, id); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}

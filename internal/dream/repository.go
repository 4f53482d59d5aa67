package dream

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/dream/mock_repository.go -package=mock_dream

// DreamRepository defines operations for managing dreams.
type DreamRepository interface {
	FindByID(ctx context.Context, id int64) (*Dream, error)
	FindAll(ctx context.Context) ([]Dream, error)
	Create(ctx context.Context, dream *Dream) error
}

// DBDreamRepository implements DreamRepository using SQL.
type DBDreamRepository struct {
	db *sqlx.DB
}

func NewDBDreamRepository(db *sqlx.DB) *DBDreamRepository {
	return &DBDreamRepository{db: db}
}

// FindByID returns ErrNotFound when no dream has the id.
func (r *DBDreamRepository) FindByID(ctx context.Context, id int64) (*Dream, error) {
	var dream Dream
	err := r.db.GetContext(ctx, &dream,
		"SELECT id, user_id, title, description, dream_type, tags, created_at FROM dreams WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dream %d > %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(dream) > %w", err)
	}
	return &dream, nil
}

// FindAll returns all dreams, newest first.
func (r *DBDreamRepository) FindAll(ctx context.Context) ([]Dream, error) {
	var dreams []Dream
	if err := r.db.SelectContext(ctx, &dreams,
		"SELECT id, user_id, title, description, dream_type, tags, created_at FROM dreams ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dreams) > %w", err)
	}
	return dreams, nil
}

// Create inserts a dream and sets its ID. Zero CreatedAt is set to the current time.
func (r *DBDreamRepository) Create(ctx context.Context, dream *Dream) error {
	if dream.DreamType == "" {
		dream.DreamType = DefaultDreamType
	}
	if dream.CreatedAt.IsZero() {
		dream.CreatedAt = time.Now().UTC()
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO dreams (user_id, title, description, dream_type, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		dream.UserID, dream.Title, dream.Description, dream.DreamType, dream.Tags, dream.CreatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert dream) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	dream.ID = id
	return nil
}

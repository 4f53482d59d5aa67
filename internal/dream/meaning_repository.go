package dream

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/dreamer/internal/database"
)

//go:generate mockgen -source=meaning_repository.go -destination=../mocks/dream/mock_meaning_repository.go -package=mock_dream

// MeaningRepository stores the meanings resolved for dreams.
type MeaningRepository interface {
	FindByDreamID(ctx context.Context, dreamID int64, language string) ([]MeaningRecord, error)
	BatchUpsert(ctx context.Context, records []MeaningRecord) error
}

// DBMeaningRepository implements MeaningRepository using SQL.
type DBMeaningRepository struct {
	db *sqlx.DB
}

func NewDBMeaningRepository(db *sqlx.DB) *DBMeaningRepository {
	return &DBMeaningRepository{db: db}
}

// FindByDreamID returns the saved meanings of a dream in one language, in insertion order.
func (r *DBMeaningRepository) FindByDreamID(ctx context.Context, dreamID int64, language string) ([]MeaningRecord, error) {
	var records []MeaningRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT id, dream_id, word, meaning, source, language, created_at FROM dream_meanings WHERE dream_id = ? AND language = ? ORDER BY id",
		dreamID, language); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dream_meanings) > %w", err)
	}
	return records, nil
}

// BatchUpsert replaces the records with the same (dream_id, word, language) in a single transaction.
func (r *DBMeaningRepository) BatchUpsert(ctx context.Context, records []MeaningRecord) error {
	if len(records) == 0 {
		return nil
	}
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, record := range records {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM dream_meanings WHERE dream_id = ? AND word = ? AND language = ?",
				record.DreamID, record.Word, record.Language); err != nil {
				return fmt.Errorf("tx.ExecContext(delete dream_meaning %s) > %w", record.Word, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO dream_meanings (dream_id, word, meaning, source, language, created_at) VALUES (?, ?, ?, ?, ?, ?)",
				record.DreamID, record.Word, record.Meaning, record.Source, record.Language, record.CreatedAt); err != nil {
				return fmt.Errorf("tx.ExecContext(insert dream_meaning %s) > %w", record.Word, err)
			}
		}
		return nil
	})
}

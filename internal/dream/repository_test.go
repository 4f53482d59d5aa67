package dream

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dreamColumns = []string{"id", "user_id", "title", "description", "dream_type", "tags", "created_at"}

func TestDBDreamRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT id, user_id, title, description, dream_type, tags, created_at FROM dreams WHERE id = ?")

	tests := []struct {
		name         string
		setupMock    func(mock sqlmock.Sqlmock)
		want         *Dream
		wantErr      bool
		wantNotFound bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(dreamColumns).
					AddRow(1, 7, "Voando", "Eu sonhei que estava voando", "lucid", "céu,voo", now)
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(rows)
			},
			want: &Dream{
				ID:          1,
				UserID:      7,
				Title:       "Voando",
				Description: "Eu sonhei que estava voando",
				DreamType:   "lucid",
				Tags:        "céu,voo",
				CreatedAt:   now,
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows(dreamColumns))
			},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBDreamRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), 1)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantNotFound, errors.Is(err, ErrNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBDreamRepository_FindAll(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT id, user_id, title, description, dream_type, tags, created_at FROM dreams ORDER BY created_at DESC, id DESC")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "returns all dreams",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(dreamColumns).
					AddRow(2, 0, "Casa", "Uma casa antiga", "normal", "", now.Add(time.Hour)).
					AddRow(1, 0, "Água", "Um rio calmo", "normal", "", now)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBDreamRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.FindAll(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, int64(2), got[0].ID)
			assert.Equal(t, "Casa", got[0].Title)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBDreamRepository_Create(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("INSERT INTO dreams (user_id, title, description, dream_type, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)")

	tests := []struct {
		name      string
		dream     Dream
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantType  string
		wantErr   bool
	}{
		{
			name:  "inserts with the default type",
			dream: Dream{Title: "Fogo", Description: "Uma casa em chamas", CreatedAt: now},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(int64(0), "Fogo", "Uma casa em chamas", DefaultDreamType, "", now).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID:   42,
			wantType: DefaultDreamType,
		},
		{
			name:  "keeps the given type",
			dream: Dream{Title: "Fogo", Description: "Pesadelo", DreamType: "nightmare", Tags: "fogo", CreatedAt: now},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(int64(0), "Fogo", "Pesadelo", "nightmare", "fogo", now).
					WillReturnResult(sqlmock.NewResult(43, 1))
			},
			wantID:   43,
			wantType: "nightmare",
		},
		{
			name:  "db error",
			dream: Dream{Title: "Fogo", Description: "Pesadelo", CreatedAt: now},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WillReturnError(fmt.Errorf("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBDreamRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			dream := tt.dream
			err = repo.Create(context.Background(), &dream)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, dream.ID)
			assert.Equal(t, tt.wantType, dream.DreamType)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDream_Text(t *testing.T) {
	assert.Equal(t, "Voando Sobre uma casa", Dream{Title: "Voando", Description: "Sobre uma casa"}.Text())
	assert.Equal(t, "Sobre uma casa", Dream{Description: "Sobre uma casa"}.Text())
}

func TestDream_TagList(t *testing.T) {
	assert.Equal(t, []string{"céu", "voo"}, Dream{Tags: " céu, ,voo "}.TagList())
	assert.Nil(t, Dream{}.TagList())
	assert.Equal(t, "céu,voo", JoinTags([]string{" céu", "", "voo"}))
}

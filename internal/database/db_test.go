package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dreamer/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        func(dir string) config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name: "sqlite file",
			cfg: func(dir string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "dreams.db")}
			},
			wantDriver: "sqlite",
		},
		{
			name: "empty driver defaults to sqlite",
			cfg: func(dir string) config.DatabaseConfig {
				return config.DatabaseConfig{Path: filepath.Join(dir, "dreams.db")}
			},
			wantDriver: "sqlite",
		},
		{
			name: "sqlite without a path",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: config.DriverSQLite}
			},
			wantErr: true,
		},
		{
			name: "mysql with pool settings",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{
					Driver:          config.DriverMySQL,
					Host:            "localhost",
					Port:            3306,
					Database:        "dreamer",
					Username:        "user",
					Password:        "secret",
					MaxOpenConns:    25,
					MaxIdleConns:    5,
					ConnMaxLifetime: 300,
				}
			},
			wantDriver: "mysql",
		},
		{
			name: "mysql with TLS and params",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{
					Driver:   config.DriverMySQL,
					Host:     "db.example.com",
					Port:     3307,
					Database: "dreamer",
					Username: "admin",
					TLS:      true,
					Params:   map[string]string{"charset": "utf8mb4"},
				}
			},
			wantDriver: "mysql",
		},
		{
			name: "unsupported driver",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: "postgres"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg(t.TempDir()))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

func TestRunInTx(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx *sqlx.Tx) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
		errMsg    string
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				_, err := tx.ExecContext(ctx, "DELETE FROM dream_meanings WHERE dream_id = ?", 1)
				return err
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM dream_meanings").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: true,
			errMsg:  "something failed",
		},
		{
			name: "rollback error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(fmt.Errorf("rollback failed"))
			},
			wantErr: true,
			errMsg:  "rollback transaction",
		},
		{
			name: "begin error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("begin failed"))
			},
			wantErr: true,
			errMsg:  "begin transaction",
		},
		{
			name: "commit error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(fmt.Errorf("commit failed"))
			},
			wantErr: true,
			errMsg:  "commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "sqlite")
			tt.setupMock(mock)

			err = RunInTx(context.Background(), sqlxDB, tt.fn)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

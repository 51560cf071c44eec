package migrate

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/logging"
)

func newManagerWithMock(t *testing.T) (*Manager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewManager(db, log), mock, db
}

const (
	qLedgerDDL    = `(?s)CREATE\s+TABLE\s+IF\s+NOT\s+EXISTS\s+schema_migrations`
	qLedgerInsert = `(?s)INSERT\s+INTO\s+schema_migrations\s*\(version,\s*description\).*ON\s+CONFLICT\s*\(version\)\s*DO\s+NOTHING`
)

func TestApply_FirstTimeExecutesStatement(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	mock.ExpectExec(qLedgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(qLedgerInsert).
		WithArgs("001_init", "initial schema").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`CREATE\s+TABLE\s+t`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mig := Migration{Version: "001_init", Description: "initial schema", Statement: "CREATE TABLE t (id INT)"}
	if err := m.Apply(context.Background(), mig); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApply_AlreadyAppliedIsNoop(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	mock.ExpectExec(qLedgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(qLedgerInsert).
		WithArgs("001_init", "initial schema").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mig := Migration{Version: "001_init", Description: "initial schema", Statement: "CREATE TABLE t (id INT)"}
	if err := m.Apply(context.Background(), mig); err != nil {
		t.Fatalf("Apply of an applied version must be a no-op, got %v", err)
	}
	// The DDL statement must never have been executed.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApply_StatementFailureRollsBackLedger(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	mock.ExpectExec(qLedgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(qLedgerInsert).
		WithArgs("002_broken", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`ALTER\s+TABLE`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	mig := Migration{Version: "002_broken", Statement: "ALTER TABLE t ADD COLUMN"}
	err := m.Apply(context.Background(), mig)
	if err == nil {
		t.Fatalf("expected error from failing statement")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsApplied(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+COUNT\(\*\)\s+FROM\s+schema_migrations\s+WHERE\s+version\s*=\s*\$1`

	mock.ExpectQuery(q).WithArgs("001_init").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(q).WithArgs("999_future").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	got, err := m.IsApplied(context.Background(), "001_init")
	if err != nil || !got {
		t.Fatalf("IsApplied(001_init) = %v, %v; want true, nil", got, err)
	}
	got, err = m.IsApplied(context.Background(), "999_future")
	if err != nil || got {
		t.Fatalf("IsApplied(999_future) = %v, %v; want false, nil", got, err)
	}
}

func TestListApplied_OrderedByApplicationTime(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	mock.ExpectQuery(`(?s)SELECT\s+version,\s*description,\s*applied_at\s+FROM\s+schema_migrations\s+ORDER\s+BY\s+applied_at`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "description", "applied_at"}).
			AddRow("001_init", "initial schema", t1).
			AddRow("002_indexes", "indexes", t2))

	records, err := m.ListApplied(context.Background())
	if err != nil {
		t.Fatalf("ListApplied error: %v", err)
	}
	if len(records) != 2 || records[0].Version != "001_init" || records[1].Version != "002_indexes" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if !records[0].AppliedAt.Equal(t1) {
		t.Fatalf("unexpected applied_at: %v", records[0].AppliedAt)
	}
}

func TestUp_WrapsMigrationFailure(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	mock.ExpectExec(qLedgerDDL).WillReturnError(errors.New("db down"))

	err := m.Up(context.Background())
	if !errors.Is(err, common.ErrMigrationFailure) {
		t.Fatalf("want ErrMigrationFailure, got %v", err)
	}
}

func TestUp_AppliesWholeCatalogInOrder(t *testing.T) {
	m, mock, db := newManagerWithMock(t)
	defer db.Close()

	for _, mig := range Catalog() {
		mock.ExpectExec(qLedgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectBegin()
		mock.ExpectExec(qLedgerInsert).
			WithArgs(mig.Version, mig.Description).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`(?s)CREATE\s+`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()
	}

	if err := m.Up(context.Background()); err != nil {
		t.Fatalf("Up error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

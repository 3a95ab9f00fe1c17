package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	domain "github.com/streamfit/streamfit/internal/domain/analysis"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

func TestSaveEvaluationHistoryUpsertsByUserAndLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// Snapshot ids are freshly minted per evaluation, so the history upsert
	// must key on (user_id, login) to overwrite the previous snapshot.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO streamer_analyses.*ON CONFLICT \(user_id, login\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO history_entries.*ON CONFLICT \(user_id, login\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	now := time.Now()
	a := &domain.Analysis{UserID: "user-1", Login: "ninja", AIScore: 7.6, UpdatedAt: now}
	h := domain.Snapshot("id-2", a, &streamer.Streamer{ID: "ninja", Name: "Ninja"})

	saver := NewEvaluationSaver(db)
	if err := saver.SaveEvaluation(context.Background(), a, h, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveAnalysesBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO streamer_analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO streamer_analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	list := []*domain.Analysis{
		{UserID: "user-1", Login: "ninja", UpdatedAt: time.Now()},
		{UserID: "user-1", Login: "pokimane", UpdatedAt: time.Now()},
	}

	saver := NewEvaluationSaver(db)
	if err := saver.SaveAnalyses(context.Background(), list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

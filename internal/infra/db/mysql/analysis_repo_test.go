package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	domain "github.com/streamfit/streamfit/internal/domain/analysis"
	"github.com/streamfit/streamfit/internal/domain/streamer"
)

var analysisColumns = []string{
	"user_id", "login", "ai_score", "relevance_score",
	"ai_summary", "ai_recommendation", "updated_at",
}

func TestAnalysisGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	updated := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT user_id, login, ai_score").
		WithArgs("user-1", "ninja").
		WillReturnRows(sqlmock.NewRows(analysisColumns).
			AddRow("user-1", "ninja", 7.6, 0.8, "summary", "rec", updated))

	repo := NewAnalysisRepository(db)
	a, err := repo.Get(context.Background(), "user-1", "ninja")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.AIScore != 7.6 || a.RelevanceScore != 0.8 {
		t.Errorf("scores = %f/%f, want 7.6/0.8", a.AIScore, a.RelevanceScore)
	}
	if !a.UpdatedAt.Equal(updated) {
		t.Errorf("updated = %s, want %s", a.UpdatedAt, updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAnalysisGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, login, ai_score").
		WithArgs("user-1", "ninja").
		WillReturnRows(sqlmock.NewRows(analysisColumns))

	repo := NewAnalysisRepository(db)
	if _, err := repo.Get(context.Background(), "user-1", "ninja"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAnalysisList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT user_id, login, ai_score").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(analysisColumns).
			AddRow("user-1", "ninja", 7.6, 0.8, "a", "b", now).
			AddRow("user-1", "pokimane", 8.2, 0.6, "c", "d", now))

	repo := NewAnalysisRepository(db)
	list, err := repo.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d records, want 2", len(list))
	}
	if list[1].Login != "pokimane" {
		t.Errorf("second login = %s, want pokimane", list[1].Login)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAnalysisDeleteByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM streamer_analyses").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewAnalysisRepository(db)
	if err := repo.DeleteByUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveEvaluationCommitsAllWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO streamer_analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO history_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO streamers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	now := time.Now()
	a := &domain.Analysis{UserID: "user-1", Login: "ninja", AIScore: 7.6, UpdatedAt: now}
	h := domain.Snapshot("id-1", a, &streamer.Streamer{ID: "ninja", Name: "Ninja"})
	raw := &streamer.RawRecord{Login: "ninja", Name: "Ninja", FetchedAt: now}

	saver := NewEvaluationSaver(db)
	if err := saver.SaveEvaluation(context.Background(), a, h, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveEvaluationRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO streamer_analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO history_entries").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	a := &domain.Analysis{UserID: "user-1", Login: "ninja", UpdatedAt: time.Now()}
	h := domain.Snapshot("id-1", a, &streamer.Streamer{ID: "ninja"})

	saver := NewEvaluationSaver(db)
	if err := saver.SaveEvaluation(context.Background(), a, h, nil); err == nil {
		t.Fatal("expected error")
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

	now := time.Now()
	list := []*domain.Analysis{
		{UserID: "user-1", Login: "ninja", UpdatedAt: now},
		{UserID: "user-1", Login: "pokimane", UpdatedAt: now},
	}

	saver := NewEvaluationSaver(db)
	if err := saver.SaveAnalyses(context.Background(), list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

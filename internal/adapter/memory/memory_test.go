package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"rollcall/internal/domain"
)

func TestStudentRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	s, err := db.Create(ctx, "alice", "hash", "Alice", "alice@example.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == 0 {
		t.Error("expected non-zero ID")
	}

	// Duplicate username rejected
	if _, err := db.Create(ctx, "alice", "h2", "Alice Again", "other@example.edu"); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for username, got %v", err)
	}

	// Duplicate email rejected
	if _, err := db.Create(ctx, "alice2", "h2", "Alice Again", "alice@example.edu"); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for email, got %v", err)
	}

	// Failed inserts must not mutate existing rows
	got, err := db.GetByUsername(ctx, "alice")
	if err != nil || got == nil || got.PasswordHash != "hash" {
		t.Errorf("existing row changed: %+v, err=%v", got, err)
	}

	byID, _ := db.GetByID(ctx, s.ID)
	if byID == nil || byID.Username != "alice" {
		t.Errorf("GetByID: %+v", byID)
	}

	missing, err := db.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for unknown username, got %+v, %v", missing, err)
	}
}

func TestAttendanceRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	studentID := int64(1)

	first := time.Date(2026, time.March, 4, 8, 30, 0, 0, time.UTC)
	second := first.Add(5 * time.Hour)

	// Two same-day marks keep exactly one row with the latest timestamp.
	if err := db.UpsertPresent(ctx, studentID, "2026-03-04", first); err != nil {
		t.Fatalf("UpsertPresent: %v", err)
	}
	if err := db.UpsertPresent(ctx, studentID, "2026-03-04", second); err != nil {
		t.Fatalf("UpsertPresent: %v", err)
	}

	records, err := db.ListRange(ctx, studentID, "2026-03-01", "2026-03-07")
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after double mark, got %d", len(records))
	}
	if !records[0].Present || records[0].LoginTime == nil || !records[0].LoginTime.Equal(second) {
		t.Errorf("expected present with latest timestamp, got %+v", records[0])
	}

	// Backfill skips the already-present day.
	days := []string{"2026-03-02", "2026-03-03", "2026-03-04"}
	if err := db.InsertAbsent(ctx, studentID, days); err != nil {
		t.Fatalf("InsertAbsent: %v", err)
	}

	total, present, err := db.CountRange(ctx, studentID, "2026-03-01", "2026-03-07")
	if err != nil {
		t.Fatalf("CountRange: %v", err)
	}
	if total != 3 || present != 1 {
		t.Errorf("expected total=3 present=1, got total=%d present=%d", total, present)
	}

	// Backfill must not demote a present day.
	records, _ = db.ListRange(ctx, studentID, "2026-03-04", "2026-03-04")
	if len(records) != 1 || !records[0].Present {
		t.Errorf("present day was demoted: %+v", records)
	}

	// Descending order
	records, _ = db.ListRange(ctx, studentID, "2026-03-01", "2026-03-07")
	for i := 1; i < len(records); i++ {
		if records[i-1].Day < records[i].Day {
			t.Errorf("records not in descending day order: %+v", records)
		}
	}

	// Other student sees nothing
	total, _, _ = db.CountRange(ctx, 999, "2026-03-01", "2026-03-07")
	if total != 0 {
		t.Errorf("expected 0 records for other student, got %d", total)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	expiresAt := time.Now().Add(24 * time.Hour)
	if err := repo.Create(ctx, 1, "tok", expiresAt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.StudentID != 1 {
		t.Fatalf("expected session for student 1, got %+v", s)
	}

	// Expired sessions are still returned; the service decides validity.
	if err := repo.Create(ctx, 2, "stale", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale, err := repo.GetByToken(ctx, "stale")
	if err != nil || stale == nil {
		t.Errorf("expected stale session row, got %+v, %v", stale, err)
	}

	ok, err := repo.Delete(ctx, "tok")
	if err != nil || !ok {
		t.Errorf("expected delete to report true, got %v, %v", ok, err)
	}
	ok, err = repo.Delete(ctx, "tok")
	if err != nil || ok {
		t.Errorf("second delete should report false without error, got %v, %v", ok, err)
	}

	gone, _ := repo.GetByToken(ctx, "tok")
	if gone != nil {
		t.Errorf("expected nil after delete, got %+v", gone)
	}
}

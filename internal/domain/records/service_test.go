package records

import (
	"context"
	"testing"
	"time"
)

// -- Mock Repository --

type mockRepo struct {
	patientsByUser map[int64]int64
	inserted       []*DailyRecord
	nextID         int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{patientsByUser: make(map[int64]int64)}
}

func (m *mockRepo) PatientIDByUser(_ context.Context, userID int64) (int64, error) {
	id, ok := m.patientsByUser[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *mockRepo) Insert(_ context.Context, rec *DailyRecord) error {
	m.nextID++
	rec.ID = m.nextID
	rec.CreatedAt = time.Now()
	m.inserted = append(m.inserted, rec)
	return nil
}

// -- Service Tests --

func TestCreate_Success(t *testing.T) {
	repo := newMockRepo()
	repo.patientsByUser[10] = 3
	svc := NewService(repo)

	rec, err := svc.Create(context.Background(), 10, CreateRequest{
		Data: NewDate(2026, time.September, 1), Mood: 7, Sleep: 8, Energy: 6, MedicationAdherence: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected an assigned id")
	}
	if rec.PatientID != 3 {
		t.Errorf("expected record owned by patient 3, got %d", rec.PatientID)
	}
	if rec.Mood != 7 || rec.Sleep != 8 || rec.Energy != 6 || rec.MedicationAdherence != 1 {
		t.Errorf("unexpected record values: %+v", rec)
	}
}

func TestCreate_NonPatientWritesNothing(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), 99, CreateRequest{Mood: 5})
	if err != ErrNotPatient {
		t.Errorf("expected ErrNotPatient, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Error("a failed create must not write a record")
	}
}

func TestCreate_PermissiveValues(t *testing.T) {
	repo := newMockRepo()
	repo.patientsByUser[10] = 3
	svc := NewService(repo)

	// No range validation is defined on mood/sleep/energy.
	rec, err := svc.Create(context.Background(), 10, CreateRequest{
		Data: NewDate(2026, time.September, 1), Mood: -5, Sleep: 1000, Energy: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Mood != -5 || rec.Sleep != 1000 {
		t.Errorf("out-of-range values must pass through unchanged: %+v", rec)
	}
}

// -- Date Tests --

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.September, 1)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"2026-09-01"` {
		t.Errorf("expected \"2026-09-01\", got %s", b)
	}

	var parsed Date
	if err := parsed.UnmarshalJSON(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Errorf("round trip changed the date: %s", parsed)
	}
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	if err := d.UnmarshalJSON([]byte(`"not-a-date"`)); err == nil {
		t.Error("expected error for malformed date")
	}
}

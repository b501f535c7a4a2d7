package dashboard

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/Beggas2/Alento/internal/domain/identity"
	"github.com/Beggas2/Alento/internal/domain/records"
)

// -- Mock Repository --

type mockRepo struct {
	patients      int
	activeLinks   int
	alerts        []ClinicalAlert
	patientUsers  []*identity.User
	professionals []ProfessionalInfo
	records       []*records.DailyRecord
	linkRequests  []LinkRequest
}

func (m *mockRepo) CountPatients(_ context.Context) (int, error)    { return m.patients, nil }
func (m *mockRepo) CountActiveLinks(_ context.Context) (int, error) { return m.activeLinks, nil }

func (m *mockRepo) CountRecordsOn(_ context.Context, day time.Time) (int, error) {
	n := 0
	for _, r := range m.records {
		if r.Data.Year() == day.Year() && r.Data.YearDay() == day.YearDay() {
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) RecentAlerts(_ context.Context, limit int) ([]ClinicalAlert, error) {
	out := append([]ClinicalAlert(nil), m.alerts...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) RecentPatientUsers(_ context.Context, limit int) ([]*identity.User, error) {
	out := append([]*identity.User(nil), m.patientUsers...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) ProfessionalLinks(_ context.Context) ([]ProfessionalInfo, error) {
	return m.professionals, nil
}

func (m *mockRepo) RecentRecords(_ context.Context, limit int) ([]*records.DailyRecord, error) {
	out := append([]*records.DailyRecord(nil), m.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) RecentLinkRequests(_ context.Context, limit int) ([]LinkRequest, error) {
	out := append([]LinkRequest(nil), m.linkRequests...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// -- Service Tests --

func TestDashboard_ProfessionalViewHasNoPatientData(t *testing.T) {
	svc := NewService(&mockRepo{patients: 2, activeLinks: 1})

	resp, err := svc.Dashboard(context.Background(), identity.RoleProfessional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PatientData != nil {
		t.Error("expected patientData to be absent for the professional view")
	}
	if resp.Dashboard.TotalPatients != 2 || resp.Dashboard.ActivePatients != 1 {
		t.Errorf("unexpected counts: %+v", resp.Dashboard)
	}
}

func TestDashboard_PlaceholderMetrics(t *testing.T) {
	svc := NewService(&mockRepo{})

	resp, err := svc.Dashboard(context.Background(), identity.RoleProfessional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Dashboard.ResponseRate != 92.5 {
		t.Errorf("expected responseRate 92.5, got %v", resp.Dashboard.ResponseRate)
	}
	if resp.Dashboard.UpcomingAppointments != 3 {
		t.Errorf("expected upcomingAppointments 3, got %d", resp.Dashboard.UpcomingAppointments)
	}
}

func TestDashboard_ActiveNeverExceedsTotal(t *testing.T) {
	// Over fixtures derived purely from patient/link population: one link
	// per patient at most.
	for _, fixture := range []struct{ patients, links int }{
		{0, 0}, {1, 0}, {1, 1}, {5, 3}, {5, 5},
	} {
		svc := NewService(&mockRepo{patients: fixture.patients, activeLinks: fixture.links})
		resp, err := svc.Dashboard(context.Background(), identity.RoleProfessional)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Dashboard.ActivePatients > resp.Dashboard.TotalPatients {
			t.Errorf("activePatients %d exceeds totalPatients %d",
				resp.Dashboard.ActivePatients, resp.Dashboard.TotalPatients)
		}
	}
}

func TestDashboard_TodayCountAndRecentRecordOrder(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	day := func(offset int) records.Date {
		d := now.AddDate(0, 0, -offset)
		return records.NewDate(d.Year(), d.Month(), d.Day())
	}

	// Records dated today, yesterday, 2 days ago, moods 7,6,5; created_at
	// follows the same order so newest-first means mood 7 first.
	repo := &mockRepo{
		records: []*records.DailyRecord{
			{ID: 1, Data: day(0), Mood: 7, CreatedAt: now},
			{ID: 2, Data: day(1), Mood: 6, CreatedAt: now.Add(-24 * time.Hour)},
			{ID: 3, Data: day(2), Mood: 5, CreatedAt: now.Add(-48 * time.Hour)},
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	resp, err := svc.Dashboard(context.Background(), identity.RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Dashboard.TodayRecords != 1 {
		t.Errorf("expected todayRecords 1, got %d", resp.Dashboard.TodayRecords)
	}

	if resp.PatientData == nil {
		t.Fatal("expected patientData for the patient view")
	}
	got := resp.PatientData.RecentRecords
	if len(got) != 3 {
		t.Fatalf("expected 3 recent records, got %d", len(got))
	}
	for i, want := range []int{7, 6, 5} {
		if got[i].Mood != want {
			t.Errorf("recentRecords[%d]: expected mood %d, got %d", i, want, got[i].Mood)
		}
	}
}

func TestDashboard_RecentAlertsNewestFirst(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	// "high" inserted first, then "medium": reverse chronological output
	// is [medium, high].
	repo := &mockRepo{
		alerts: []ClinicalAlert{
			{ID: 1, Severity: "high", CreatedAt: base},
			{ID: 2, Severity: "medium", CreatedAt: base.Add(time.Minute)},
		},
	}
	svc := NewService(repo)

	resp, err := svc.Dashboard(context.Background(), identity.RoleProfessional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alerts := resp.Dashboard.RecentAlerts
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Severity != "medium" || alerts[1].Severity != "high" {
		t.Errorf("expected [medium, high], got [%s, %s]", alerts[0].Severity, alerts[1].Severity)
	}
}

func TestDashboard_PatientViewNullSafeProfessionalInfo(t *testing.T) {
	repo := &mockRepo{
		professionals: []ProfessionalInfo{
			{ID: 1, Nome: "Dra. Ana", IsMedico: false}, // no profile: nil especialidade/codigo
		},
	}
	svc := NewService(repo)

	resp, err := svc.Dashboard(context.Background(), identity.RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pros := resp.PatientData.Professionals
	if len(pros) != 1 {
		t.Fatalf("expected 1 professional, got %d", len(pros))
	}
	if pros[0].Especialidade != nil || pros[0].Codigo != nil {
		t.Error("expected nil especialidade and codigo for a professional without a profile")
	}
}

func TestDashboard_UnknownRoleGetsNoPatientData(t *testing.T) {
	svc := NewService(&mockRepo{})

	resp, err := svc.Dashboard(context.Background(), "alguma-coisa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PatientData != nil {
		t.Error("only the patient role gets the patient sub-view")
	}
}

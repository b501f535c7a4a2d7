package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/Beggas2/Alento/internal/domain/identity"
)

const (
	recentLimit = 5

	// Placeholder metrics the frontend renders; neither is computed from
	// data yet.
	placeholderResponseRate         = 92.5
	placeholderUpcomingAppointments = 3
)

type Service struct {
	repo Repository
	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Dashboard assembles the summary view. The role is caller-supplied, not
// derived from authentication: the endpoint is a public view selector.
//
// Known authorization gap, kept for frontend compatibility: the patient
// view returns links, records, and link requests across ALL patients, not
// scoped to the caller.
func (s *Service) Dashboard(ctx context.Context, role string) (*Response, error) {
	totalPatients, err := s.repo.CountPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	activePatients, err := s.repo.CountActiveLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active links: %w", err)
	}

	alerts, err := s.repo.RecentAlerts(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}

	recentPatients, err := s.repo.RecentPatientUsers(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent patients: %w", err)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	todayRecords, err := s.repo.CountRecordsOn(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count today records: %w", err)
	}

	resp := &Response{
		Dashboard: Data{
			TotalPatients:        totalPatients,
			ActivePatients:       activePatients,
			ResponseRate:         placeholderResponseRate,
			RecentAlerts:         alerts,
			RecentPatients:       recentPatients,
			UpcomingAppointments: placeholderUpcomingAppointments,
			TodayRecords:         todayRecords,
		},
	}

	if role == identity.RolePatient {
		view, err := s.patientView(ctx)
		if err != nil {
			return nil, err
		}
		resp.PatientData = view
	}

	return resp, nil
}

func (s *Service) patientView(ctx context.Context) (*PatientView, error) {
	professionals, err := s.repo.ProfessionalLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("professional links: %w", err)
	}

	recentRecords, err := s.repo.RecentRecords(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent records: %w", err)
	}

	linkRequests, err := s.repo.RecentLinkRequests(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent link requests: %w", err)
	}

	return &PatientView{
		Professionals: professionals,
		RecentRecords: recentRecords,
		LinkRequests:  linkRequests,
	}, nil
}

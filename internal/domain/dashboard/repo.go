package dashboard

import (
	"context"
	"time"

	"github.com/Beggas2/Alento/internal/domain/identity"
	"github.com/Beggas2/Alento/internal/domain/records"
)

type Repository interface {
	CountPatients(ctx context.Context) (int, error)
	// CountActiveLinks counts patient-professional links with status active.
	CountActiveLinks(ctx context.Context) (int, error)
	// CountRecordsOn counts daily records dated exactly day (calendar date).
	CountRecordsOn(ctx context.Context, day time.Time) (int, error)
	RecentAlerts(ctx context.Context, limit int) ([]ClinicalAlert, error)
	// RecentPatientUsers returns the newest users with the patient role,
	// profiles attached.
	RecentPatientUsers(ctx context.Context, limit int) ([]*identity.User, error)
	// ProfessionalLinks projects every patient-professional link into
	// professional info entries.
	ProfessionalLinks(ctx context.Context) ([]ProfessionalInfo, error)
	RecentRecords(ctx context.Context, limit int) ([]*records.DailyRecord, error)
	RecentLinkRequests(ctx context.Context, limit int) ([]LinkRequest, error)
}

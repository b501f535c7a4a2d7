package dashboard

import (
	"time"

	"github.com/Beggas2/Alento/internal/domain/identity"
	"github.com/Beggas2/Alento/internal/domain/records"
)

// ClinicalAlert maps to the clinical_alerts table. Alerts are created only
// by seed data; the API reads them.
type ClinicalAlert struct {
	ID        int64     `db:"id" json:"id"`
	RecordID  int64     `db:"record_id" json:"record_id"`
	Severity  string    `db:"severity" json:"severity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LinkRequest maps to the link_requests table.
type LinkRequest struct {
	ID             int64     `db:"id" json:"id"`
	PatientID      int64     `db:"patient_id" json:"patient_id"`
	ProfessionalID int64     `db:"professional_id" json:"professional_id"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ProfessionalInfo is a care-link projection: one professional as shown to
// a patient, with null-safe defaults when the professional has no profile.
type ProfessionalInfo struct {
	ID            int64   `json:"id"`
	Nome          string  `json:"nome"`
	Especialidade *string `json:"especialidade"`
	Codigo        *string `json:"codigo"`
	IsMedico      bool    `json:"is_medico"`
}

// Data is the summary block every caller receives. Field names are the
// frontend's camelCase contract.
type Data struct {
	TotalPatients        int              `json:"totalPatients"`
	ActivePatients       int              `json:"activePatients"`
	ResponseRate         float64          `json:"responseRate"`
	RecentAlerts         []ClinicalAlert  `json:"recentAlerts"`
	RecentPatients       []*identity.User `json:"recentPatients"`
	UpcomingAppointments int              `json:"upcomingAppointments"`
	TodayRecords         int              `json:"todayRecords"`
}

// PatientView is the extra block returned when the caller asks for the
// patient dashboard.
type PatientView struct {
	Professionals []ProfessionalInfo     `json:"professionals"`
	RecentRecords []*records.DailyRecord `json:"recentRecords"`
	LinkRequests  []LinkRequest          `json:"linkRequests"`
}

type Response struct {
	Dashboard   Data         `json:"dashboard"`
	PatientData *PatientView `json:"patientData"`
}

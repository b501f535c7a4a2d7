package records

import (
	"context"
	"errors"
)

// ErrNotPatient means the authenticated caller has no patient sub-record,
// so it cannot own daily records.
var ErrNotPatient = errors.New("patient not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a daily record owned by the caller's patient row. Nothing
// is written when the caller is not a patient.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*DailyRecord, error) {
	patientID, err := s.repo.PatientIDByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotPatient
		}
		return nil, err
	}

	rec := &DailyRecord{
		PatientID:           patientID,
		Data:                req.Data,
		Mood:                req.Mood,
		Sleep:               req.Sleep,
		Energy:              req.Energy,
		MedicationAdherence: req.MedicationAdherence,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

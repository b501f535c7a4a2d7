package records

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date serialized as YYYY-MM-DD, matching the DATE
// column it maps to.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// DailyRecord maps to the daily_records table: one patient's wellbeing
// entry for one day.
type DailyRecord struct {
	ID                  int64     `db:"id" json:"id"`
	PatientID           int64     `db:"patient_id" json:"-"`
	Data                Date      `db:"data" json:"data"`
	Mood                int       `db:"mood" json:"mood"`
	Sleep               int       `db:"sleep" json:"sleep"`
	Energy              int       `db:"energy" json:"energy"`
	MedicationAdherence int       `db:"medication_adherence" json:"medication_adherence"`
	CreatedAt           time.Time `db:"created_at" json:"-"`
}

// CreateRequest is the JSON body of POST /records. Value ranges for mood,
// sleep and energy are deliberately unchecked beyond being integers; an id
// in the body is ignored.
type CreateRequest struct {
	Data                Date `json:"data"`
	Mood                int  `json:"mood"`
	Sleep               int  `json:"sleep"`
	Energy              int  `json:"energy"`
	MedicationAdherence int  `json:"medication_adherence"`
}

package entity

import "time"

// Patient is a roster record for the documentation dashboard.
type Patient struct {
	ID        string
	Name      string
	Age       int
	Condition string
	LastVisit time.Time
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatientDocument is a scanned document (referral, lab report, chart photo)
// stored in object storage and linked to a patient.
type PatientDocument struct {
	ID          string
	PatientID   string
	Filename    string
	ContentType string
	URL         string
	CreatedAt   time.Time
}

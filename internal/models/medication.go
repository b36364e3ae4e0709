package models

// Medication is a dose prescribed to a patient.
type Medication struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	PatientID uint   `json:"patient_id" gorm:"index;not null"`
	Name      string `json:"name"`
	Time      string `json:"time"` // free-text schedule, e.g. "08:00"
	IsTaken   bool   `json:"is_taken"`
}

package models

import "time"

// DailyLog is a single symptom check submitted by a patient.
type DailyLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PatientID   uint      `json:"patient_id" gorm:"index;not null"`
	Temperature float64   `json:"temperature"`
	Symptoms    string    `json:"symptoms"`
	PhotoBase64 *string   `json:"photo_base64"` // Optional field
	CreatedAt   time.Time `json:"created_at"`
}

// HistorySummary aggregates the temperatures of a patient's logs.
type HistorySummary struct {
	PatientID         uint    `json:"patient_id"`
	Count             int     `json:"count"`
	TemperatureAvg    float64 `json:"temperature_avg"`
	TemperatureStdDev float64 `json:"temperature_stddev"`
}

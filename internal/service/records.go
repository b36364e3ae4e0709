package service

import (
	"context"
	"sync"
	"time"

	"emsana-backend/internal/models"
	"emsana-backend/internal/store"
	"emsana-backend/internal/utils"
)

// Records serves the daily log, medication and patient list operations.
type Records struct {
	store store.Store
	now   func() time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func NewRecords(s store.Store) *Records {
	return &Records{store: s, now: time.Now}
}

// stamp returns the creation time for a new log, never earlier than the previous one.
func (r *Records) stamp() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.now().UTC()
	if t.Before(r.lastSeen) {
		t = r.lastSeen
	}
	r.lastSeen = t
	return t
}

func (r *Records) User(ctx context.Context, id uint) (*models.User, error) {
	return r.store.GetUser(ctx, id)
}

func (r *Records) PatientsOfDoctor(ctx context.Context, doctorID uint) ([]models.User, error) {
	return r.store.ListPatientsByDoctor(ctx, doctorID)
}

// AddDailyLog persists l with a server-assigned ID and creation time.
func (r *Records) AddDailyLog(ctx context.Context, l *models.DailyLog) error {
	l.ID = 0
	l.CreatedAt = r.stamp()
	return r.store.CreateDailyLog(ctx, l)
}

func (r *Records) History(ctx context.Context, patientID uint) ([]models.DailyLog, error) {
	return r.store.ListDailyLogsByPatient(ctx, patientID)
}

// HistorySummary reports the temperature mean and spread over a patient's logs.
func (r *Records) HistorySummary(ctx context.Context, patientID uint) (models.HistorySummary, error) {
	logs, err := r.store.ListDailyLogsByPatient(ctx, patientID)
	if err != nil {
		return models.HistorySummary{}, err
	}
	return utils.SummarizeTemperatures(patientID, logs), nil
}

func (r *Records) AddMedication(ctx context.Context, m *models.Medication) error {
	m.ID = 0
	return r.store.CreateMedication(ctx, m)
}

func (r *Records) Medications(ctx context.Context, patientID uint) ([]models.Medication, error) {
	return r.store.ListMedicationsByPatient(ctx, patientID)
}

// Ping reports whether the backing store is reachable.
func (r *Records) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

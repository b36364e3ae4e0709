package store

import (
	"context"
	"errors"

	"emsana-backend/internal/models"
)

var (
	// ErrConflict is returned when a user with the same email or iin exists.
	ErrConflict = errors.New("identity already exists")
	// ErrNotFound is returned by single-record lookups that match nothing.
	ErrNotFound = errors.New("record not found")
)

// Store persists users, daily logs and medications.
// List methods return an empty, non-nil slice when nothing matches and never
// check that the referenced doctor or patient exists.
type Store interface {
	// Transaction runs fn against a store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// IdentityTaken reports whether any user has the given email or iin.
	IdentityTaken(ctx context.Context, email, iin string) (bool, error)
	// CreateUser inserts u and sets its ID. A unique violation yields ErrConflict.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	// FindUserByIdentifier returns the first user whose field equals value, or ErrNotFound.
	FindUserByIdentifier(ctx context.Context, field models.IdentifierField, value string) (*models.User, error)
	ListPatientsByDoctor(ctx context.Context, doctorID uint) ([]models.User, error)

	CreateDailyLog(ctx context.Context, l *models.DailyLog) error
	ListDailyLogsByPatient(ctx context.Context, patientID uint) ([]models.DailyLog, error)

	CreateMedication(ctx context.Context, m *models.Medication) error
	ListMedicationsByPatient(ctx context.Context, patientID uint) ([]models.Medication, error)

	Ping(ctx context.Context) error
}

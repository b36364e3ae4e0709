package store

import (
	"context"
	"fmt"
	"sync"

	"emsana-backend/internal/models"
)

// MemoryStore is an in-process Store used when the database is disabled and in tests.
// It enforces the same email/iin uniqueness as the database indexes.
type MemoryStore struct {
	txMu sync.Mutex // serializes transactions

	mu         sync.RWMutex
	users      []models.User
	logs       []models.DailyLog
	meds       []models.Medication
	nextUserID uint
	nextLogID  uint
	nextMedID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	tx := &memoryTx{MemoryStore: m}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (m *MemoryStore) IdentityTaken(ctx context.Context, email, iin string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identityTakenLocked(email, iin), nil
}

func (m *MemoryStore) identityTakenLocked(email, iin string) bool {
	for _, u := range m.users {
		if u.Email == email || u.IIN == iin {
			return true
		}
	}
	return false
}

func (m *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.identityTakenLocked(u.Email, u.IIN) {
		return ErrConflict
	}
	m.nextUserID++
	u.ID = m.nextUserID
	m.users = append(m.users, *u)
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindUserByIdentifier(ctx context.Context, field models.IdentifierField, value string) (*models.User, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unsupported identifier field %q", field)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if field.Of(&u) == value {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListPatientsByDoctor(ctx context.Context, doctorID uint) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := []models.User{}
	for _, u := range m.users {
		if u.DoctorID != nil && *u.DoctorID == doctorID {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *MemoryStore) CreateDailyLog(ctx context.Context, l *models.DailyLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextLogID++
	l.ID = m.nextLogID
	m.logs = append(m.logs, *l)
	return nil
}

func (m *MemoryStore) ListDailyLogsByPatient(ctx context.Context, patientID uint) ([]models.DailyLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logs := []models.DailyLog{}
	for _, l := range m.logs {
		if l.PatientID == patientID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (m *MemoryStore) CreateMedication(ctx context.Context, med *models.Medication) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextMedID++
	med.ID = m.nextMedID
	m.meds = append(m.meds, *med)
	return nil
}

func (m *MemoryStore) ListMedicationsByPatient(ctx context.Context, patientID uint) ([]models.Medication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	meds := []models.Medication{}
	for _, med := range m.meds {
		if med.PatientID == patientID {
			meds = append(meds, med)
		}
	}
	return meds, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// memoryTx writes through to the store and records how to undo each write.
type memoryTx struct {
	*MemoryStore
	undo []func()
}

func (tx *memoryTx) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(tx)
}

func (tx *memoryTx) CreateUser(ctx context.Context, u *models.User) error {
	if err := tx.MemoryStore.CreateUser(ctx, u); err != nil {
		return err
	}
	id := u.ID
	tx.undo = append(tx.undo, func() {
		tx.users = removeByID(tx.users, func(v models.User) bool { return v.ID == id })
	})
	return nil
}

func (tx *memoryTx) CreateDailyLog(ctx context.Context, l *models.DailyLog) error {
	if err := tx.MemoryStore.CreateDailyLog(ctx, l); err != nil {
		return err
	}
	id := l.ID
	tx.undo = append(tx.undo, func() {
		tx.logs = removeByID(tx.logs, func(v models.DailyLog) bool { return v.ID == id })
	})
	return nil
}

func (tx *memoryTx) CreateMedication(ctx context.Context, med *models.Medication) error {
	if err := tx.MemoryStore.CreateMedication(ctx, med); err != nil {
		return err
	}
	id := med.ID
	tx.undo = append(tx.undo, func() {
		tx.meds = removeByID(tx.meds, func(v models.Medication) bool { return v.ID == id })
	})
	return nil
}

func (tx *memoryTx) rollback() {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func removeByID[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}

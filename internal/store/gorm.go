package store

import (
	"context"
	"errors"
	"fmt"

	"emsana-backend/internal/models"

	"gorm.io/gorm"
)

// identifierColumns whitelists the columns usable as login identifiers.
var identifierColumns = map[models.IdentifierField]string{
	models.IdentifierEmail: "email",
	models.IdentifierIIN:   "iin",
}

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db. Every call scopes its own session to the caller's context.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) IdentityTaken(ctx context.Context, email, iin string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR iin = ?", email, iin).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check identity: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (s *GormStore) FindUserByIdentifier(ctx context.Context, field models.IdentifierField, value string) (*models.User, error) {
	column, ok := identifierColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported identifier field %q", field)
	}

	var u models.User
	if err := s.db.WithContext(ctx).Where(column+" = ?", value).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}
	return &u, nil
}

func (s *GormStore) ListPatientsByDoctor(ctx context.Context, doctorID uint) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list patients of doctor %d: %w", doctorID, err)
	}
	return users, nil
}

func (s *GormStore) CreateDailyLog(ctx context.Context, l *models.DailyLog) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create daily log: %w", err)
	}
	return nil
}

func (s *GormStore) ListDailyLogsByPatient(ctx context.Context, patientID uint) ([]models.DailyLog, error) {
	logs := []models.DailyLog{}
	if err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("id").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list daily logs of patient %d: %w", patientID, err)
	}
	return logs, nil
}

func (s *GormStore) CreateMedication(ctx context.Context, m *models.Medication) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create medication: %w", err)
	}
	return nil
}

func (s *GormStore) ListMedicationsByPatient(ctx context.Context, patientID uint) ([]models.Medication, error) {
	meds := []models.Medication{}
	if err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("id").Find(&meds).Error; err != nil {
		return nil, fmt.Errorf("list medications of patient %d: %w", patientID, err)
	}
	return meds, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

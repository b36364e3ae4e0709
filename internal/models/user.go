package models

// User defines the structure for both doctor and patient accounts.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	IIN       string `json:"iin" gorm:"uniqueIndex;not null"` // national identity number
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role" gorm:"index;not null"`
	DoctorID  *uint  `json:"doctor_id" gorm:"index"` // supervising doctor, nil for doctors and unassigned patients
	Password  string `json:"-" gorm:"not null"`       // bcrypt hash, never serialized
}

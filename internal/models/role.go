package models

// Role is the enumerated kind of a user account.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// IdentifierField names the user column used to look an account up at login.
type IdentifierField string

const (
	IdentifierEmail IdentifierField = "email"
	IdentifierIIN   IdentifierField = "iin"
)

// Valid reports whether f maps to a unique user column.
func (f IdentifierField) Valid() bool {
	return f == IdentifierEmail || f == IdentifierIIN
}

// Of returns the value of the identifier field on u.
func (f IdentifierField) Of(u *User) string {
	if f == IdentifierIIN {
		return u.IIN
	}
	return u.Email
}

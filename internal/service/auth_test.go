package service

import (
	"context"
	"errors"
	"testing"

	"emsana-backend/internal/models"
	"emsana-backend/internal/store"
	"emsana-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(s store.Store, identifier models.IdentifierField) *Auth {
	return NewAuth(s, utils.NewPasswordHasher(bcrypt.MinCost), identifier, zap.NewNop())
}

func TestAuth_RegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	a := newTestAuth(s, models.IdentifierEmail)

	u := &models.User{Email: "a@x.com", IIN: "1", FirstName: "Aruzhan", Role: models.RoleDoctor}
	require.NoError(t, a.Register(ctx, u, "p1"))

	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "p1", u.Password)
	assert.True(t, utils.CheckPassword("p1", u.Password))

	stored, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Password, stored.Password)
	assert.Equal(t, models.RoleDoctor, stored.Role)
}

func TestAuth_RegisterDefaultsRoleToPatient(t *testing.T) {
	a := newTestAuth(store.NewMemoryStore(), models.IdentifierEmail)

	u := &models.User{Email: "a@x.com", IIN: "1"}
	require.NoError(t, a.Register(context.Background(), u, "p1"))
	assert.Equal(t, models.RolePatient, u.Role)
}

func TestAuth_RegisterConflicts(t *testing.T) {
	cases := []struct {
		name  string
		email string
		iin   string
	}{
		{"same email", "a@x.com", "2"},
		{"same iin", "b@x.com", "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s := store.NewMemoryStore()
			a := newTestAuth(s, models.IdentifierEmail)

			require.NoError(t, a.Register(ctx, &models.User{Email: "a@x.com", IIN: "1"}, "p1"))

			err := a.Register(ctx, &models.User{Email: tc.email, IIN: tc.iin}, "p2")
			assert.ErrorIs(t, err, store.ErrConflict)

			_, err = s.GetUser(ctx, 2)
			assert.ErrorIs(t, err, store.ErrNotFound, "no second row may be written")
		})
	}
}

func TestAuth_RegisterAcceptsEmptyIdentityValuesOnce(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(store.NewMemoryStore(), models.IdentifierEmail)

	require.NoError(t, a.Register(ctx, &models.User{Email: "", IIN: "1"}, "p1"))
	err := a.Register(ctx, &models.User{Email: "", IIN: "2"}, "p2")
	assert.ErrorIs(t, err, store.ErrConflict)
}

type failingHasher struct{}

func (failingHasher) HashPassword(string) (string, error) { return "", errors.New("hasher down") }
func (failingHasher) CheckPassword(string, string) bool { return false }

func TestAuth_RegisterHashFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	a := NewAuth(s, failingHasher{}, models.IdentifierEmail, zap.NewNop())

	err := a.Register(ctx, &models.User{Email: "a@x.com", IIN: "1"}, "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrConflict)

	taken, err := s.IdentityTaken(ctx, "a@x.com", "1")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(store.NewMemoryStore(), models.IdentifierEmail)

	u := &models.User{Email: "a@x.com", IIN: "1", FirstName: "Aruzhan", Role: models.RoleDoctor}
	require.NoError(t, a.Register(ctx, u, "p1"))

	res, err := a.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, models.RoleDoctor, res.User.Role)

	wrong, err := a.Login(ctx, "a@x.com", "wrong")
	require.NoError(t, err)
	unknown, err := a.Login(ctx, "nobody@x.com", "p1")
	require.NoError(t, err)

	assert.False(t, wrong.OK)
	assert.Equal(t, wrong, unknown)
}

func TestAuth_LoginByIIN(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(store.NewMemoryStore(), models.IdentifierIIN)
	assert.Equal(t, models.IdentifierIIN, a.Identifier())

	require.NoError(t, a.Register(ctx, &models.User{Email: "a@x.com", IIN: "900101"}, "p1"))

	res, err := a.Login(ctx, "900101", "p1")
	require.NoError(t, err)
	assert.True(t, res.OK)

	res, err = a.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.False(t, res.OK, "email must not be accepted when iin is the identifier")
}

type brokenStore struct {
	*store.MemoryStore
}

func (brokenStore) FindUserByIdentifier(context.Context, models.IdentifierField, string) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func TestAuth_LoginPropagatesStoreFailure(t *testing.T) {
	a := newTestAuth(brokenStore{store.NewMemoryStore()}, models.IdentifierEmail)

	_, err := a.Login(context.Background(), "a@x.com", "p1")
	assert.EqualError(t, err, "connection refused")
}

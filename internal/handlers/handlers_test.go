package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"emsana-backend/internal/models"
	"emsana-backend/internal/service"
	"emsana-backend/internal/store"
	"emsana-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errDown = errors.New("database is down")

// downStore fails every call, standing in for an unreachable database.
type downStore struct{}

func (downStore) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return errDown
}
func (downStore) IdentityTaken(context.Context, string, string) (bool, error) { return false, errDown }
func (downStore) CreateUser(context.Context, *models.User) error { return errDown }
func (downStore) GetUser(context.Context, uint) (*models.User, error) { return nil, errDown }
func (downStore) FindUserByIdentifier(context.Context, models.IdentifierField, string) (*models.User, error) {
	return nil, errDown
}
func (downStore) ListPatientsByDoctor(context.Context, uint) ([]models.User, error) {
	return nil, errDown
}
func (downStore) CreateDailyLog(context.Context, *models.DailyLog) error { return errDown }
func (downStore) ListDailyLogsByPatient(context.Context, uint) ([]models.DailyLog, error) {
	return nil, errDown
}
func (downStore) CreateMedication(context.Context, *models.Medication) error { return errDown }
func (downStore) ListMedicationsByPatient(context.Context, uint) ([]models.Medication, error) {
	return nil, errDown
}
func (downStore) Ping(context.Context) error { return errDown }

func newEngine(s store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	auth := service.NewAuth(s, utils.NewPasswordHasher(bcrypt.MinCost), models.IdentifierEmail, logger)
	h := New(auth, service.NewRecords(s), logger)

	r := gin.New()
	r.GET("/healthz", h.CheckConnection)
	r.POST("/users/", h.Register)
	r.GET("/users/:id", h.GetUser)
	r.POST("/login", h.Login)
	r.POST("/logs/add", h.AddDailyLog)
	r.GET("/doctor/:doctor_id/patients", h.GetPatientsByDoctorID)
	r.GET("/doctor/patient-history/:patient_id", h.GetPatientHistory)
	r.GET("/doctor/patient-history/:patient_id/summary", h.GetPatientHistorySummary)
	r.POST("/medications/add", h.AddMedication)
	r.GET("/medications/:patient_id", h.GetPatientMedications)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlers_StoreFailuresAnswer500(t *testing.T) {
	r := newEngine(downStore{})

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/users/", `{"email":"a@x.com","iin":"1","password":"p1"}`},
		{http.MethodGet, "/users/1", ""},
		{http.MethodPost, "/login", `{"email":"a@x.com","password":"p1"}`},
		{http.MethodPost, "/logs/add", `{"patient_id":1,"temperature":36.6}`},
		{http.MethodGet, "/doctor/1/patients", ""},
		{http.MethodGet, "/doctor/patient-history/1", ""},
		{http.MethodGet, "/doctor/patient-history/1/summary", ""},
		{http.MethodPost, "/medications/add", `{"patient_id":1,"name":"Aspirin"}`},
		{http.MethodGet, "/medications/1", ""},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), errDown.Error())
		})
	}
}

func TestHandlers_HealthReportsUnavailable(t *testing.T) {
	w := serve(newEngine(downStore{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlers_MalformedIDs(t *testing.T) {
	r := newEngine(store.NewMemoryStore())

	for _, path := range []string{
		"/users/abc",
		"/users/-1",
		"/doctor/x/patients",
		"/doctor/patient-history/1.5",
		"/doctor/patient-history/x/summary",
		"/medications/99999999999",
	} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestHandlers_MalformedBodies(t *testing.T) {
	r := newEngine(store.NewMemoryStore())

	for _, path := range []string{"/users/", "/login", "/logs/add", "/medications/add"} {
		w := serve(r, http.MethodPost, path, `{"broken"`)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestHandlers_GetUserHidesPassword(t *testing.T) {
	s := store.NewMemoryStore()
	r := newEngine(s)

	w := serve(r, http.MethodPost, "/users/", `{"email":"a@x.com","iin":"1","password":"p1","first_name":"Dana"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first_name":"Dana"`)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

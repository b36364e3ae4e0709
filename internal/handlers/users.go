package handlers

import (
	"errors"
	"net/http"

	"emsana-backend/internal/models"
	"emsana-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type RegisterRequest struct {
	IIN       string      `json:"iin"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role" binding:"omitempty,oneof=doctor patient"`
	DoctorID  *uint       `json:"doctor_id"`
	Password  string      `json:"password" binding:"required"`
}

// LoginRequest carries both identifier fields; only the configured one is read.
type LoginRequest struct {
	Email    string `json:"email"`
	IIN      string `json:"iin"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) identifier(field models.IdentifierField) string {
	if field == models.IdentifierIIN {
		return r.IIN
	}
	return r.Email
}

// --- Handler Functions ---

// Register creates a user. A taken email or iin answers 400 without writing.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		IIN:       req.IIN,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		DoctorID:  req.DoctorID,
	}
	if err := h.auth.Register(c.Request.Context(), &user, req.Password); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email or IIN already exists"})
			return
		}
		h.internalError(c, "Failed to register user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login never answers an error status for bad credentials: unknown
// identifiers and wrong passwords both yield status "error".
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	field := h.auth.Identifier()
	res, err := h.auth.Login(c.Request.Context(), req.identifier(field), req.Password)
	if err != nil {
		h.internalError(c, "Database error", err)
		return
	}
	if !res.OK {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Invalid login or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"user_id":     res.User.ID,
		"role":        res.User.Role,
		"first_name":  res.User.FirstName,
		string(field): field.Of(res.User),
	})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.records.User(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.internalError(c, "Database error fetching user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetPatientsByDoctorID lists the patients supervised by a doctor. The doctor
// itself is not looked up; an unknown id yields an empty list.
func (h *Handler) GetPatientsByDoctorID(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id", "doctor")
	if !ok {
		return
	}

	patients, err := h.records.PatientsOfDoctor(c.Request.Context(), doctorID)
	if err != nil {
		h.internalError(c, "Database error fetching patients", err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

package handlers

import (
	"net/http"

	"emsana-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

// AddDailyLogRequest has no id or created_at; both are assigned by the server.
type AddDailyLogRequest struct {
	PatientID   uint    `json:"patient_id"`
	Temperature float64 `json:"temperature"`
	Symptoms    string  `json:"symptoms"`
	PhotoBase64 *string `json:"photo_base64"`
}

type AddMedicationRequest struct {
	PatientID uint   `json:"patient_id"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	IsTaken   bool   `json:"is_taken"`
}

// --- Handler Functions ---

func (h *Handler) AddDailyLog(c *gin.Context) {
	var req AddDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log := models.DailyLog{
		PatientID:   req.PatientID,
		Temperature: req.Temperature,
		Symptoms:    req.Symptoms,
		PhotoBase64: req.PhotoBase64,
	}
	if err := h.records.AddDailyLog(c.Request.Context(), &log); err != nil {
		h.internalError(c, "Failed to add daily log", err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *Handler) GetPatientHistory(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id", "patient")
	if !ok {
		return
	}

	logs, err := h.records.History(c.Request.Context(), patientID)
	if err != nil {
		h.internalError(c, "Database error fetching history", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) GetPatientHistorySummary(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id", "patient")
	if !ok {
		return
	}

	summary, err := h.records.HistorySummary(c.Request.Context(), patientID)
	if err != nil {
		h.internalError(c, "Database error summarizing history", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) AddMedication(c *gin.Context) {
	var req AddMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	med := models.Medication{
		PatientID: req.PatientID,
		Name:      req.Name,
		Time:      req.Time,
		IsTaken:   req.IsTaken,
	}
	if err := h.records.AddMedication(c.Request.Context(), &med); err != nil {
		h.internalError(c, "Failed to add medication", err)
		return
	}
	c.JSON(http.StatusOK, med)
}

func (h *Handler) GetPatientMedications(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id", "patient")
	if !ok {
		return
	}

	meds, err := h.records.Medications(c.Request.Context(), patientID)
	if err != nil {
		h.internalError(c, "Database error fetching medications", err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

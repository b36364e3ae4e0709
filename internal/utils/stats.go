package utils

import (
	"math"

	"emsana-backend/internal/models"
)

// roundFloat rounds a float64 to the given number of decimal places.
func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// CalculateStats calculates the average and sample standard deviation of data.
// Returns (average, standardDeviation), both rounded to 4 decimals.
func CalculateStats(data []float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0.0, 0.0
	}

	sum := 0.0
	for _, val := range data {
		sum += val
	}
	average := sum / float64(n)

	// sample standard deviation is undefined for a single value
	if n < 2 {
		return roundFloat(average, 4), 0.0
	}

	varianceSum := 0.0
	for _, val := range data {
		varianceSum += math.Pow(val-average, 2)
	}
	stdDev := math.Sqrt(varianceSum / float64(n-1))

	return roundFloat(average, 4), roundFloat(stdDev, 4)
}

// SummarizeTemperatures builds the temperature summary of a patient's logs.
func SummarizeTemperatures(patientID uint, logs []models.DailyLog) models.HistorySummary {
	temps := make([]float64, 0, len(logs))
	for _, l := range logs {
		temps = append(temps, l.Temperature)
	}
	avg, std := CalculateStats(temps)
	return models.HistorySummary{
		PatientID:         patientID,
		Count:             len(logs),
		TemperatureAvg:    avg,
		TemperatureStdDev: std,
	}
}

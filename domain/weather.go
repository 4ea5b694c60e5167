package domain

import (
	"strings"
	"time"
)

// Condition is one weather condition slot as reported by the provider.
type Condition struct {
	Main        string    `json:"main"`
	Description string    `json:"description"`
	Temp        float64   `json:"temp,omitempty"`
	At          time.Time `json:"at,omitempty"`
}

// WeatherSnapshot is a transient, read-only view of provider data for one
// city. It is consumed per evaluation and never persisted by the core.
type WeatherSnapshot struct {
	City      string      `json:"city"`
	Current   Condition   `json:"current"`
	Hourly    []Condition `json:"hourly,omitempty"`
	WindSpeed float64     `json:"wind_speed,omitempty"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// NearTerm returns the nearest-term condition descriptor, preferring the
// first hourly slot and falling back to current conditions.
func (s *WeatherSnapshot) NearTerm() Condition {
	if s == nil {
		return Condition{}
	}
	if len(s.Hourly) > 0 {
		return s.Hourly[0]
	}
	return s.Current
}

// WeatherAlert is a best-effort advisory attached to an outdoor task.
type WeatherAlert struct {
	TaskID    string `json:"task_id"`
	TaskTitle string `json:"task_title"`
	City      string `json:"city"`
	Condition string `json:"condition"`
}

// alertWindow bounds how far from a task's due time a precipitation
// warning is still useful.
const alertWindow = 24 * time.Hour

var precipitationTerms = []string{"rain", "storm", "drizzle"}

// EvaluateWeatherAlert decides whether the forecast warrants a
// precipitation warning for the task. It applies only to outdoor tasks.
// The nearest-term descriptor is matched case-insensitively against the
// precipitation terms; dated tasks are eligible only within 24 hours of
// their due time, undated tasks are always eligible.
func EvaluateWeatherAlert(task Task, snapshot *WeatherSnapshot, now time.Time) (WeatherAlert, bool) {
	if snapshot == nil || !task.Category.IsOutdoor() {
		return WeatherAlert{}, false
	}

	descriptor := strings.ToLower(snapshot.NearTerm().Main)
	matched := false
	for _, term := range precipitationTerms {
		if strings.Contains(descriptor, term) {
			matched = true
			break
		}
	}
	if !matched {
		return WeatherAlert{}, false
	}

	if task.DueAt != nil {
		gap := task.DueAt.Sub(now)
		if gap < 0 {
			gap = -gap
		}
		if gap >= alertWindow {
			return WeatherAlert{}, false
		}
	}

	return WeatherAlert{
		TaskID:    task.ID,
		TaskTitle: task.Title,
		City:      snapshot.City,
		Condition: descriptor,
	}, true
}

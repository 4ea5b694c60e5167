package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Drift      bool      `json:"drift_journal"`
	DriftSize  int       `json:"drift_size"`
	LastCheck  time.Time `json:"last_check"`
}

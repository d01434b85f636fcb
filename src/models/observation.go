package models

import "time"

// Observation is one dated value of an indicator.
type Observation struct {
	Indicator string    `db:"indicator"`
	Date      time.Time `db:"date"`
	Value     float64   `db:"value"`
}

// Bounds summarises the stored history of an indicator.
type Bounds struct {
	Count int
	First *time.Time
	Last  *time.Time
}

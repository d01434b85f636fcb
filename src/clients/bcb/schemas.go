package bcb

import "time"

// RawPoint is one element of the SGS JSON answer.
type RawPoint struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

type Point struct {
	Date  time.Time
	Value float64
}

package models

import "time"

type RefreshLog struct {
	ID          int       `db:"id"`
	Indicator   string    `db:"indicator"`
	RefreshedAt time.Time `db:"refreshed_at"`
	Rows        int       `db:"rows"`
	CreatedAt   time.Time `db:"created_at"`
}

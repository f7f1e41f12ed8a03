package models

import "time"

// Slot is a row of the slots table: one serialized value per key.
type Slot struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`
}

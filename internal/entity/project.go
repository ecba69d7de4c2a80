package entity

import "time"

type Project struct {
	ID             string
	ClientID       string
	Name           string
	Area           float64
	Floors         int
	FinishingLevel string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package model

// Movie represents a row in the `movies` table. Cost is a non-negative
// amount, rating conventionally sits in 0–5.
type Movie struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Rating float64 `json:"rating"`
}

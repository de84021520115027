package domain

import "time"

type Difficulty string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyModerate  Difficulty = "Moderate"
	DifficultyDifficult Difficulty = "Difficult"
)

type Trek struct {
	ID          int64
	Name        string
	Slug        string
	Region      string
	Duration    int // days
	Difficulty  Difficulty
	MaxAltitude int // meters, 0 when unknown
	PriceCents  int64
	Description string
	Itinerary   string
	Includes    string
	Excludes    string
	ImageURL    string
	CreatedAt   time.Time
}

type TravelPackage struct {
	ID          int64
	Name        string
	Slug        string
	Destination string
	Duration    int
	PriceCents  int64
	Description string
	Itinerary   string
	Includes    string
	Excludes    string
	ImageURL    string
	PackageType string
	CreatedAt   time.Time
}

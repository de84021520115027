package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed from s.
// Confirmation has no driving operation in this service, but a confirmed
// booking is still frozen with respect to cancellation.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

type TrekBooking struct {
	ID              int64
	Reference       string
	UserID          int64
	TrekID          int64
	TrekDate        time.Time
	People          int
	TotalCents      int64
	Status          BookingStatus
	SpecialRequests string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type TravelBooking struct {
	ID         int64
	Reference  string
	UserID     int64
	PackageID  int64
	TravelDate time.Time
	People     int
	TotalCents int64
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

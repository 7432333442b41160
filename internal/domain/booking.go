package domain

import "time"

// Status is a booking's lifecycle state.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"

	// StatusFilterAll is accepted as a filter value only; no booking carries it.
	StatusFilterAll = "all"
)

// ValidStatusFilter reports whether s is usable as a report status filter.
func ValidStatusFilter(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return s == StatusFilterAll
}

// Booking is a stay reservation. HotelID references Hotel.HotelCode.
// CheckIn/CheckOut are naive calendar dates (midnight UTC); CreatedAt is the
// moment the booking workflow created the record. Rooms <= 0 means the count
// was never recorded and aggregates treat it as 1; a missing TotalPrice scans
// as 0.
type Booking struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotelId"`
	UserID     int64     `json:"userId"`
	RoomID     int64     `json:"roomId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Rooms      int       `json:"rooms"`
	TotalPrice float64   `json:"totalPrice"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RoomCount returns the number of rooms the booking reserves, defaulting to 1.
func (b Booking) RoomCount() int {
	if b.Rooms <= 0 {
		return 1
	}
	return b.Rooms
}

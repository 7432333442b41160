package domain

import (
	"context"
	"time"
)

// DateRange is an inclusive calendar-day window, both bounds at midnight UTC.
type DateRange struct {
	From, To time.Time
}

type HotelsQuery struct {
	PartnerID *int64
	HotelCode *int64
}

type RoomsQuery struct {
	HotelCodes []int64
}

// BookingsQuery filters bookings by hotel set, optional status, and exactly
// one of two date dimensions: CreatedIn matches createdAt within the window
// (inclusive of the whole end day), StaysIn matches stay intervals overlapping
// the window (checkIn <= to AND checkOut >= from).
type BookingsQuery struct {
	HotelIDs  []int64
	Status    Status // empty means any status
	CreatedIn *DateRange
	StaysIn   *DateRange
}

// InventoryGateway is the read-only query interface over the platform's
// hotel/room/booking store. The reporting engine never writes through it.
type InventoryGateway interface {
	FindHotels(ctx context.Context, q HotelsQuery) ([]Hotel, error)
	FindRooms(ctx context.Context, q RoomsQuery) ([]Room, error)
	FindBookings(ctx context.Context, q BookingsQuery) ([]Booking, error)
	ListPartnerIDs(ctx context.Context) ([]int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

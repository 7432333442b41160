package domain

// Report read models. These are computed per request and never persisted; the
// JSON shapes match the partner dashboard contract.

// DayBucket accumulates bookings created on one calendar day.
type DayBucket struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type BookingStats struct {
	TotalBookings   int                  `json:"totalBookings"`
	TotalRevenue    float64              `json:"totalRevenue"`
	StatusBreakdown map[string]int       `json:"statusBreakdown"`
	BookingsByDate  map[string]DayBucket `json:"bookingsByDate"`
}

// BookingReport lists the matching bookings (createdAt descending, booking id
// as the deterministic tie-break) alongside their aggregate stats.
type BookingReport struct {
	Bookings []Booking    `json:"bookings"`
	Stats    BookingStats `json:"stats"`
}

// DailyRevenue is one point on the revenue timeline. Date is an ISO calendar
// day (YYYY-MM-DD, UTC).
type DailyRevenue struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	BookingCount int     `json:"bookingCount"`
}

// HotelInfo is the enrichment attached to per-hotel revenue groups. A hotel
// that can no longer be resolved keeps Title "Unknown" and omits the code.
type HotelInfo struct {
	HotelCode int64  `json:"hotelCode,omitempty"`
	Title     string `json:"title"`
}

type HotelRevenue struct {
	HotelID      int64     `json:"hotelId"`
	Revenue      float64   `json:"revenue"`
	BookingCount int       `json:"bookingCount"`
	HotelInfo    HotelInfo `json:"hotelInfo"`
}

// RevenueReport covers Confirmed bookings only. DailyRevenue is sorted
// ascending by date, RevenueByHotel ascending by hotel id.
type RevenueReport struct {
	DailyRevenue   []DailyRevenue `json:"dailyRevenue"`
	TotalRevenue   float64        `json:"totalRevenue"`
	RevenueByHotel []HotelRevenue `json:"revenueByHotel"`
}

// OccupancyDay is one calendar day's room usage. OccupancyRate is
// BookedRooms/TotalRooms*100, or 0 when the fleet has no rooms.
type OccupancyDay struct {
	TotalRooms    int     `json:"totalRooms"`
	BookedRooms   int     `json:"bookedRooms"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type OccupancyReport struct {
	OccupancyByDate      map[string]OccupancyDay `json:"occupancyByDate"`
	AverageOccupancyRate float64                 `json:"averageOccupancyRate"`
	TotalRooms           int                     `json:"totalRooms"`
	TotalBookedRooms     int                     `json:"totalBookedRooms"`
	HotelInfo            []HotelInfo             `json:"hotelInfo"`
}

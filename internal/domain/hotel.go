package domain

// Hotel is a partner-owned property. HotelCode is the numeric code bookings
// reference as their HotelID; it is unique within a partner's inventory.
type Hotel struct {
	HotelCode int64  `json:"hotelCode"`
	PartnerID int64  `json:"partnerId"`
	Title     string `json:"title"`
}

// Room is a bookable room category within a hotel. TotalRooms is the capacity
// count; records written before capacity tracking carry 0, and every aggregate
// treats that as 1.
type Room struct {
	ID         int64  `json:"id"`
	HotelCode  int64  `json:"hotelCode"`
	Name       string `json:"name"`
	TotalRooms int    `json:"totalRooms"`
}

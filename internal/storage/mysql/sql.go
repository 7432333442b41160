package mysql

// -----------------------------------------------------------------------------
// READ QUERIES
// The reporting engine is read-only: there are no write paths here. Bookings
// are created and transitioned by the booking workflow, not by this service.
// -----------------------------------------------------------------------------

const selectHotelsSQL = `
SELECT hotel_code, partner_id, title
FROM hotels
`

const selectRoomsPrefix = `
SELECT id, hotel_code, name, total_rooms
FROM rooms
WHERE hotel_code IN `

const selectBookingsPrefix = `
SELECT id, hotel_code, user_id, room_id, check_in, check_out, rooms, total_price, status, created_at
FROM bookings
WHERE hotel_code IN `

// Newest first; id breaks ties so equal timestamps page deterministically.
// Aligns with the index on (hotel_code, created_at, id).
const orderBookingsSQL = ` ORDER BY created_at DESC, id DESC`

const listPartnersSQL = `
SELECT DISTINCT partner_id
FROM hotels
ORDER BY partner_id
`

package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"partner_reports/internal/adapters/observability"
	"partner_reports/internal/domain"
)

// Repo implements domain.InventoryGateway over the platform's MySQL schema.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// inClause renders an IN (?,?,...) placeholder list and its args.
func inClause(ids []int64) (string, []any) {
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}
	return "(" + strings.Join(ph, ",") + ")", args
}

func (r *Repo) FindHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	var (
		where []string
		args  []any
	)
	if q.PartnerID != nil {
		where = append(where, "partner_id = ?")
		args = append(args, *q.PartnerID)
	}
	if q.HotelCode != nil {
		where = append(where, "hotel_code = ?")
		args = append(args, *q.HotelCode)
	}
	sqlStr := selectHotelsSQL
	if len(where) > 0 {
		sqlStr += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	sqlStr += "ORDER BY hotel_code"

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	observability.ObserveGateway("find_hotels", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var title sql.NullString
		if err := rows.Scan(&h.HotelCode, &h.PartnerID, &title); err != nil {
			return nil, err
		}
		h.Title = title.String
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) FindRooms(ctx context.Context, q domain.RoomsQuery) ([]domain.Room, error) {
	if len(q.HotelCodes) == 0 {
		return nil, nil
	}
	in, args := inClause(q.HotelCodes)

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, selectRoomsPrefix+in+" ORDER BY hotel_code, id", args...)
	observability.ObserveGateway("find_rooms", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		var name sql.NullString
		var total sql.NullInt64
		if err := rows.Scan(&rm.ID, &rm.HotelCode, &name, &total); err != nil {
			return nil, err
		}
		rm.Name = name.String
		// NULL capacity stays 0 here; aggregates default it to 1.
		rm.TotalRooms = int(total.Int64)
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) FindBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	if len(q.HotelIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(q.HotelIDs)
	sqlStr := selectBookingsPrefix + in

	if q.Status != "" {
		sqlStr += " AND status = ?"
		args = append(args, string(q.Status))
	}
	if q.CreatedIn != nil {
		// Inclusive of the whole end day: createdAt in [from, to+24h).
		sqlStr += " AND created_at >= ? AND created_at < ?"
		args = append(args, q.CreatedIn.From, q.CreatedIn.To.AddDate(0, 0, 1))
	}
	if q.StaysIn != nil {
		sqlStr += " AND check_in <= ? AND check_out >= ?"
		args = append(args, q.StaysIn.To, q.StaysIn.From)
	}
	sqlStr += orderBookingsSQL

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	observability.ObserveGateway("find_bookings", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var roomsN sql.NullInt64
		var price sql.NullFloat64
		var status string
		if err := rows.Scan(
			&b.ID,
			&b.HotelID,
			&b.UserID,
			&b.RoomID,
			&b.CheckIn,
			&b.CheckOut,
			&roomsN,
			&price,
			&status,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		// NULL room count stays 0 (defaulted to 1 by the aggregators);
		// NULL price is 0 in every monetary aggregate.
		b.Rooms = int(roomsN.Int64)
		b.TotalPrice = price.Float64
		b.Status = domain.Status(status)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) ListPartnerIDs(ctx context.Context) ([]int64, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, listPartnersSQL)
	observability.ObserveGateway("list_partners", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

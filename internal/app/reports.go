package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"partner_reports/internal/domain"
)

// ReportService builds the three partner reports. It is read-only and
// idempotent: the same request against unchanged data yields identical output,
// so results are cached in Redis keyed by the full request. The cache is
// optional; a nil cache just recomputes every time.
type ReportService struct {
	gw            domain.InventoryGateway
	cache         domain.Cache
	cacheTTL      time.Duration
	enrichWorkers int64
}

func NewReportService(gw domain.InventoryGateway, cache domain.Cache, ttl time.Duration, enrichWorkers int) *ReportService {
	if enrichWorkers <= 0 {
		enrichWorkers = 4
	}
	return &ReportService{gw: gw, cache: cache, cacheTTL: ttl, enrichWorkers: int64(enrichWorkers)}
}

func isoDay(t time.Time) string { return t.UTC().Format(dayLayout) }

func (s *ReportService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, _ := s.cache.Get(ctx, key, dst)
	return ok
}

func (s *ReportService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
}

// partnerHotelCodes resolves the hotel codes the partner owns.
func (s *ReportService) partnerHotelCodes(ctx context.Context, partnerID int64) ([]int64, error) {
	hotels, err := s.gw.FindHotels(ctx, domain.HotelsQuery{PartnerID: &partnerID})
	if err != nil {
		return nil, err
	}
	codes := make([]int64, 0, len(hotels))
	for _, h := range hotels {
		codes = append(codes, h.HotelCode)
	}
	return codes, nil
}

// BookingReport groups a partner's bookings by status and by creation day.
func (s *ReportService) BookingReport(ctx context.Context, req BookingReportRequest) (domain.BookingReport, error) {
	win, status, verr := req.validate()
	if verr != nil {
		return domain.BookingReport{}, verr
	}

	statusKey := string(status)
	if statusKey == "" {
		statusKey = domain.StatusFilterAll
	}
	key := fmt.Sprintf("report:bookings:%d:%s:%s:%s", req.PartnerID, isoDay(win.From), isoDay(win.To), statusKey)
	var out domain.BookingReport
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	codes, err := s.partnerHotelCodes(ctx, req.PartnerID)
	if err != nil {
		return domain.BookingReport{}, domain.Aggregation("failed to build booking report", err)
	}
	bookings, err := s.gw.FindBookings(ctx, domain.BookingsQuery{
		HotelIDs:  codes,
		Status:    status,
		CreatedIn: &win,
	})
	if err != nil {
		return domain.BookingReport{}, domain.Aggregation("failed to build booking report", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	// Most recent first; booking id breaks ties so equal timestamps still
	// order deterministically.
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID > bookings[j].ID
	})

	stats := domain.BookingStats{
		StatusBreakdown: make(map[string]int),
		BookingsByDate:  make(map[string]domain.DayBucket),
	}
	for _, b := range bookings {
		stats.TotalBookings++
		stats.TotalRevenue += b.TotalPrice
		stats.StatusBreakdown[string(b.Status)]++
		day := isoDay(b.CreatedAt)
		bucket := stats.BookingsByDate[day]
		bucket.Count++
		bucket.Revenue += b.TotalPrice
		stats.BookingsByDate[day] = bucket
	}

	out = domain.BookingReport{Bookings: bookings, Stats: stats}
	s.cacheSet(ctx, key, out)
	return out, nil
}

// RevenueReport produces the confirmed-revenue timeline and the per-hotel
// breakdown for a partner.
func (s *ReportService) RevenueReport(ctx context.Context, req RevenueReportRequest) (domain.RevenueReport, error) {
	win, verr := req.validate()
	if verr != nil {
		return domain.RevenueReport{}, verr
	}

	key := fmt.Sprintf("report:revenue:%d:%s:%s", req.PartnerID, isoDay(win.From), isoDay(win.To))
	var out domain.RevenueReport
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	codes, err := s.partnerHotelCodes(ctx, req.PartnerID)
	if err != nil {
		return domain.RevenueReport{}, domain.Aggregation("failed to build revenue report", err)
	}
	bookings, err := s.gw.FindBookings(ctx, domain.BookingsQuery{
		HotelIDs:  codes,
		Status:    domain.StatusConfirmed,
		CreatedIn: &win,
	})
	if err != nil {
		return domain.RevenueReport{}, domain.Aggregation("failed to build revenue report", err)
	}

	var total float64
	daily := make(map[string]domain.DailyRevenue)
	byHotel := make(map[int64]domain.HotelRevenue)
	for _, b := range bookings {
		total += b.TotalPrice

		day := isoDay(b.CreatedAt)
		d := daily[day]
		d.Date = day
		d.Revenue += b.TotalPrice
		d.BookingCount++
		daily[day] = d

		h := byHotel[b.HotelID]
		h.HotelID = b.HotelID
		h.Revenue += b.TotalPrice
		h.BookingCount++
		byHotel[b.HotelID] = h
	}

	// ISO day keys sort lexicographically in chronological order.
	timeline := make([]domain.DailyRevenue, 0, len(daily))
	for _, d := range daily {
		timeline = append(timeline, d)
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date < timeline[j].Date })

	perHotel, err := s.enrichHotelRevenue(ctx, byHotel)
	if err != nil {
		return domain.RevenueReport{}, domain.Aggregation("failed to build revenue report", err)
	}

	out = domain.RevenueReport{DailyRevenue: timeline, TotalRevenue: total, RevenueByHotel: perHotel}
	s.cacheSet(ctx, key, out)
	return out, nil
}

// enrichHotelRevenue looks up each hotel's title concurrently, bounded by the
// enrichment worker count. A failed or empty lookup keeps the group with title
// "Unknown" rather than failing the batch; only context cancellation aborts.
func (s *ReportService) enrichHotelRevenue(ctx context.Context, byHotel map[int64]domain.HotelRevenue) ([]domain.HotelRevenue, error) {
	ids := make([]int64, 0, len(byHotel))
	for id := range byHotel {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.HotelRevenue, len(ids))
	sem := semaphore.NewWeighted(s.enrichWorkers)
	var wg sync.WaitGroup

	var acquireErr error
	for i, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		wg.Add(1)
		go func(slot int, hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			group := byHotel[hotelID]
			group.HotelInfo = domain.HotelInfo{Title: "Unknown"}
			if hotels, err := s.gw.FindHotels(ctx, domain.HotelsQuery{HotelCode: &hotelID}); err == nil && len(hotels) > 0 {
				group.HotelInfo = domain.HotelInfo{HotelCode: hotels[0].HotelCode, Title: hotels[0].Title}
			}
			out[slot] = group
		}(i, id)
	}
	wg.Wait()
	if acquireErr != nil {
		return nil, acquireErr
	}
	return out, nil
}

// OccupancyReport expands confirmed stays across the requested window and
// computes per-day occupancy against the fleet-wide room total.
func (s *ReportService) OccupancyReport(ctx context.Context, req OccupancyReportRequest) (domain.OccupancyReport, error) {
	win, verr := req.validate()
	if verr != nil {
		return domain.OccupancyReport{}, verr
	}

	scope := domain.StatusFilterAll
	if req.HotelCode != nil {
		scope = fmt.Sprintf("%d", *req.HotelCode)
	}
	key := fmt.Sprintf("report:occupancy:%d:%s:%s:%s", req.PartnerID, isoDay(win.From), isoDay(win.To), scope)
	var out domain.OccupancyReport
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	hotels, err := s.gw.FindHotels(ctx, domain.HotelsQuery{PartnerID: &req.PartnerID, HotelCode: req.HotelCode})
	if err != nil {
		return domain.OccupancyReport{}, domain.Aggregation("failed to build occupancy report", err)
	}
	codes := make([]int64, 0, len(hotels))
	info := make([]domain.HotelInfo, 0, len(hotels))
	for _, h := range hotels {
		codes = append(codes, h.HotelCode)
		info = append(info, domain.HotelInfo{HotelCode: h.HotelCode, Title: h.Title})
	}

	rooms, err := s.gw.FindRooms(ctx, domain.RoomsQuery{HotelCodes: codes})
	if err != nil {
		return domain.OccupancyReport{}, domain.Aggregation("failed to build occupancy report", err)
	}
	// Fleet-wide capacity across every room record in scope, not partitioned
	// per hotel. A record without a capacity count contributes 1.
	totalRooms := 0
	for _, r := range rooms {
		if r.TotalRooms <= 0 {
			totalRooms++
		} else {
			totalRooms += r.TotalRooms
		}
	}

	bookings, err := s.gw.FindBookings(ctx, domain.BookingsQuery{
		HotelIDs: codes,
		Status:   domain.StatusConfirmed,
		StaysIn:  &win,
	})
	if err != nil {
		return domain.OccupancyReport{}, domain.Aggregation("failed to build occupancy report", err)
	}

	byDate := make(map[string]domain.OccupancyDay)
	days := 0
	for d := win.From; !d.After(win.To); d = d.AddDate(0, 0, 1) {
		byDate[isoDay(d)] = domain.OccupancyDay{TotalRooms: totalRooms}
		days++
	}

	totalBooked := 0
	for _, b := range bookings {
		totalBooked += b.RoomCount()

		// Attribute the stay day by day, truncated at the window's end. Days
		// before the window simply have no entry in byDate.
		start := b.CheckIn
		if start.Before(win.From) {
			start = win.From
		}
		for d := start; !d.After(b.CheckOut) && !d.After(win.To); d = d.AddDate(0, 0, 1) {
			dayKey := isoDay(d)
			day, ok := byDate[dayKey]
			if !ok {
				continue
			}
			day.BookedRooms += b.RoomCount()
			if totalRooms > 0 {
				day.OccupancyRate = float64(day.BookedRooms) / float64(totalRooms) * 100
			}
			byDate[dayKey] = day
		}
	}

	avg := 0.0
	if days > 0 {
		var sum float64
		for _, day := range byDate {
			sum += day.OccupancyRate
		}
		avg = sum / float64(days)
	}

	out = domain.OccupancyReport{
		OccupancyByDate:      byDate,
		AverageOccupancyRate: avg,
		TotalRooms:           totalRooms,
		TotalBookedRooms:     totalBooked,
		HotelInfo:            info,
	}
	s.cacheSet(ctx, key, out)
	return out, nil
}

package app

import (
	"time"

	"partner_reports/internal/domain"
)

// Request shapes for the three reports. Dates arrive as the dashboard sends
// them (YYYY-MM-DD strings); validation normalizes them to a midnight-UTC
// window before any gateway call runs.

type BookingReportRequest struct {
	PartnerID int64
	StartDate string
	EndDate   string
	Status    string // optional; "all" or a lifecycle status
}

type RevenueReportRequest struct {
	PartnerID int64
	StartDate string
	EndDate   string
}

type OccupancyReportRequest struct {
	PartnerID int64
	StartDate string
	EndDate   string
	HotelCode *int64 // optional single-hotel restriction
}

const dayLayout = "2006-01-02"

// validateWindow checks partner identity and date-range well-formedness shared
// by all three reports.
func validateWindow(partnerID int64, startDate, endDate string) (domain.DateRange, *domain.Error) {
	if partnerID <= 0 {
		return domain.DateRange{}, domain.Validation(domain.KindMissingPartner, "missing partner id")
	}
	if startDate == "" || endDate == "" {
		return domain.DateRange{}, domain.Validation(domain.KindMissingDateRange, "missing start or end date")
	}
	from, err := time.ParseInLocation(dayLayout, startDate, time.UTC)
	if err != nil {
		return domain.DateRange{}, domain.Validation(domain.KindInvalidDateFormat, "invalid start date: expected YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(dayLayout, endDate, time.UTC)
	if err != nil {
		return domain.DateRange{}, domain.Validation(domain.KindInvalidDateFormat, "invalid end date: expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return domain.DateRange{}, domain.Validation(domain.KindInvalidDateRange, "end date must not precede start date")
	}
	return domain.DateRange{From: from, To: to}, nil
}

func (r BookingReportRequest) validate() (domain.DateRange, domain.Status, *domain.Error) {
	win, verr := validateWindow(r.PartnerID, r.StartDate, r.EndDate)
	if verr != nil {
		return domain.DateRange{}, "", verr
	}
	if r.Status != "" && !domain.ValidStatusFilter(r.Status) {
		return domain.DateRange{}, "", domain.Validation(domain.KindInvalidStatus, "invalid booking status filter")
	}
	// "all" and "" both mean no status restriction.
	if r.Status == "" || r.Status == domain.StatusFilterAll {
		return win, "", nil
	}
	return win, domain.Status(r.Status), nil
}

func (r RevenueReportRequest) validate() (domain.DateRange, *domain.Error) {
	return validateWindow(r.PartnerID, r.StartDate, r.EndDate)
}

func (r OccupancyReportRequest) validate() (domain.DateRange, *domain.Error) {
	return validateWindow(r.PartnerID, r.StartDate, r.EndDate)
}

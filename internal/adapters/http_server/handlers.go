package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"partner_reports/internal/app"
	"partner_reports/internal/domain"
)

type Handlers struct{ R *app.ReportService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/partners/{partnerID}/reports/bookings", h.bookingReport)
	s.mux.Get("/v1/partners/{partnerID}/reports/revenue", h.revenueReport)
	s.mux.Get("/v1/partners/{partnerID}/reports/occupancy", h.occupancyReport)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeReportErr maps the engine's error taxonomy onto problem responses:
// validation kinds keep their message, aggregation faults stay generic but the
// cause is logged.
func writeReportErr(w http.ResponseWriter, err error) {
	var re *domain.Error
	if !errors.As(err, &re) {
		log.Error().Err(err).Msg("report failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "report could not be computed")
		return
	}
	if re.Status >= http.StatusInternalServerError {
		log.Error().Err(re).Msg("report failed")
	}
	writeProblem(w, re.Status, http.StatusText(re.Status), re.Message)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeReport(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write report body")
	}
}

// partnerID returns 0 on a missing/garbled path segment; validation turns
// that into the MissingPartner failure.
func partnerID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "partnerID"), 10, 64)
	return id
}

func (h *Handlers) bookingReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.R.BookingReport(r.Context(), app.BookingReportRequest{
		PartnerID: partnerID(r),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		Status:    q.Get("status"),
	})
	if err != nil {
		writeReportErr(w, err)
		return
	}
	writeReport(w, r, out)
}

func (h *Handlers) revenueReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.R.RevenueReport(r.Context(), app.RevenueReportRequest{
		PartnerID: partnerID(r),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	})
	if err != nil {
		writeReportErr(w, err)
		return
	}
	writeReport(w, r, out)
}

func (h *Handlers) occupancyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.OccupancyReportRequest{
		PartnerID: partnerID(r),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	}
	if hc := q.Get("hotel_code"); hc != "" {
		code, err := strconv.ParseInt(hc, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "hotel_code must be a number")
			return
		}
		req.HotelCode = &code
	}
	out, err := h.R.OccupancyReport(r.Context(), req)
	if err != nil {
		writeReportErr(w, err)
		return
	}
	writeReport(w, r, out)
}

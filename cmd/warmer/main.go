// The warmer pre-computes every partner's reports over a trailing window so
// the dashboard's first load of the day hits warm cache entries. Run it from
// cron; it exits when all partners are done.
package main

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"partner_reports/internal/adapters/observability"
	redisad "partner_reports/internal/adapters/redis"
	"partner_reports/internal/app"
	"partner_reports/internal/shared"
	mysqlrepo "partner_reports/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.WarmWorkers).
		Int("window_days", cfg.WarmWindowDays).
		Msg("report warmer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	gw := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	reports := app.NewReportService(gw, cache, cfg.CacheTTL, cfg.EnrichWorkers)

	partners, err := gw.ListPartnerIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list partners failed")
	}

	end := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -cfg.WarmWindowDays).Format("2006-01-02")

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	var wg sync.WaitGroup

	for _, id := range partners {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(partnerID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := warmPartner(ctx, reports, partnerID, start, end); err != nil {
				log.Warn().Int64("partner", partnerID).Err(err).Msg("warm failed")
				return
			}
			log.Info().Int64("partner", partnerID).Msg("warm ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("report warming completed")
}

func warmPartner(ctx context.Context, reports *app.ReportService, partnerID int64, start, end string) error {
	if _, err := reports.BookingReport(ctx, app.BookingReportRequest{
		PartnerID: partnerID, StartDate: start, EndDate: end,
	}); err != nil {
		return err
	}
	if _, err := reports.RevenueReport(ctx, app.RevenueReportRequest{
		PartnerID: partnerID, StartDate: start, EndDate: end,
	}); err != nil {
		return err
	}
	_, err := reports.OccupancyReport(ctx, app.OccupancyReportRequest{
		PartnerID: partnerID, StartDate: start, EndDate: end,
	})
	return err
}

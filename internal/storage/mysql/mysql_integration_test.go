//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"partner_reports/internal/domain"
	mysqlrepo "partner_reports/internal/storage/mysql"
)

// ---------- small helpers ----------

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO hotels (hotel_code, partner_id, title) VALUES
		   (101, 7, 'Harbor View'),
		   (102, 7, 'City Garden'),
		   (900, 8, 'Elsewhere Inn')`,
		`INSERT INTO rooms (hotel_code, name, total_rooms) VALUES
		   (101, 'Standard', 10),
		   (101, 'Suite', NULL),
		   (102, 'Standard', 20)`,
		`INSERT INTO bookings (id, hotel_code, user_id, room_id, check_in, check_out, rooms, total_price, status, created_at) VALUES
		   (1, 101, 1, 1, '2024-03-10', '2024-03-12', 3, 150.00, 'Confirmed', '2024-03-01 09:00:00'),
		   (2, 101, 2, 1, '2024-03-11', '2024-03-15', NULL, NULL, 'Pending',   '2024-03-02 23:30:00'),
		   (3, 102, 3, 3, '2024-04-01', '2024-04-03', 1, 80.00,  'Confirmed', '2024-03-02 23:30:00'),
		   (4, 900, 4, NULL, '2024-03-10', '2024-03-11', 1, 60.00, 'Confirmed', '2024-03-01 12:00:00'),
		   (5, 101, 5, 1, '2024-05-01', '2024-05-02', 2, 90.00,  'Confirmed', '2024-03-03 00:00:00')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

// ---------- the test ----------

func TestRepo_MySQL_Queries(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=booking",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/booking?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	seed(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	t.Run("FindHotels by partner", func(t *testing.T) {
		partner := int64(7)
		hotels, err := repo.FindHotels(ctx, domain.HotelsQuery{PartnerID: &partner})
		if err != nil {
			t.Fatalf("FindHotels: %v", err)
		}
		if len(hotels) != 2 || hotels[0].HotelCode != 101 || hotels[1].HotelCode != 102 {
			t.Fatalf("unexpected hotels: %+v", hotels)
		}
		if hotels[0].Title != "Harbor View" {
			t.Fatalf("title: %+v", hotels[0])
		}
	})

	t.Run("FindHotels by partner and code", func(t *testing.T) {
		partner, code := int64(7), int64(900)
		hotels, err := repo.FindHotels(ctx, domain.HotelsQuery{PartnerID: &partner, HotelCode: &code})
		if err != nil {
			t.Fatalf("FindHotels: %v", err)
		}
		if len(hotels) != 0 {
			t.Fatalf("foreign hotel leaked: %+v", hotels)
		}
	})

	t.Run("FindRooms with NULL capacity", func(t *testing.T) {
		rooms, err := repo.FindRooms(ctx, domain.RoomsQuery{HotelCodes: []int64{101}})
		if err != nil {
			t.Fatalf("FindRooms: %v", err)
		}
		if len(rooms) != 2 {
			t.Fatalf("rooms: %+v", rooms)
		}
		if rooms[0].TotalRooms != 10 || rooms[1].TotalRooms != 0 {
			t.Fatalf("capacities: %+v", rooms)
		}
	})

	t.Run("FindBookings created window includes whole end day", func(t *testing.T) {
		win := domain.DateRange{From: mustDay(t, "2024-03-01"), To: mustDay(t, "2024-03-02")}
		bookings, err := repo.FindBookings(ctx, domain.BookingsQuery{
			HotelIDs:  []int64{101, 102},
			CreatedIn: &win,
		})
		if err != nil {
			t.Fatalf("FindBookings: %v", err)
		}
		// booking 2 and 3 were created 23:30 on the end day; 5 is midnight the day after
		ids := bookingIDs(bookings)
		if len(ids) != 3 || ids[0] != 3 || ids[1] != 2 || ids[2] != 1 {
			t.Fatalf("ids (created desc, id desc): %v", ids)
		}
		// NULL price and NULL rooms scan to zero values
		for _, b := range bookings {
			if b.ID == 2 && (b.TotalPrice != 0 || b.Rooms != 0) {
				t.Fatalf("NULL scans: %+v", b)
			}
		}
	})

	t.Run("FindBookings status filter", func(t *testing.T) {
		win := domain.DateRange{From: mustDay(t, "2024-03-01"), To: mustDay(t, "2024-03-31")}
		bookings, err := repo.FindBookings(ctx, domain.BookingsQuery{
			HotelIDs:  []int64{101, 102},
			Status:    domain.StatusPending,
			CreatedIn: &win,
		})
		if err != nil {
			t.Fatalf("FindBookings: %v", err)
		}
		if len(bookings) != 1 || bookings[0].ID != 2 {
			t.Fatalf("pending filter: %+v", bookings)
		}
	})

	t.Run("FindBookings stay overlap", func(t *testing.T) {
		win := domain.DateRange{From: mustDay(t, "2024-03-12"), To: mustDay(t, "2024-03-20")}
		bookings, err := repo.FindBookings(ctx, domain.BookingsQuery{
			HotelIDs: []int64{101, 102},
			Status:   domain.StatusConfirmed,
			StaysIn:  &win,
		})
		if err != nil {
			t.Fatalf("FindBookings: %v", err)
		}
		// booking 1 ends exactly on the window start; 3 and 5 are outside
		if len(bookings) != 1 || bookings[0].ID != 1 {
			t.Fatalf("overlap filter: %+v", bookings)
		}
	})

	t.Run("FindBookings empty hotel set", func(t *testing.T) {
		bookings, err := repo.FindBookings(ctx, domain.BookingsQuery{})
		if err != nil {
			t.Fatalf("FindBookings: %v", err)
		}
		if len(bookings) != 0 {
			t.Fatalf("expected none: %+v", bookings)
		}
	})

	t.Run("ListPartnerIDs", func(t *testing.T) {
		ids, err := repo.ListPartnerIDs(ctx)
		if err != nil {
			t.Fatalf("ListPartnerIDs: %v", err)
		}
		if len(ids) != 2 || ids[0] != 7 || ids[1] != 8 {
			t.Fatalf("partners: %v", ids)
		}
	})
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("bad day %q: %v", s, err)
	}
	return d
}

func bookingIDs(bs []domain.Booking) []int64 {
	out := make([]int64, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

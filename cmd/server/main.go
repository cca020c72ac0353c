package main

import (
	"database/sql"
	"net/http"
	"os"
	"strings"

	"carpark/internal/api"
	"carpark/internal/auth"
	"carpark/internal/billing"
	"carpark/internal/repository"
	"carpark/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	privilegeRepo := repository.NewPrivilegeRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	clock := service.RealClock{}
	notifier := service.NewNotifyService()
	feeMode := billing.ParseFeeMode(os.Getenv("REPORT_FEE_MODE"))
	zoneOrder := splitZones(os.Getenv("ZONE_SORT_ORDER"))

	bookingSvc := service.NewBookingService(bookingRepo, catalogRepo, notifier, clock)
	reportSvc := service.NewReportService(bookingRepo, catalogRepo, clock, feeMode, zoneOrder)
	privilegeSvc := service.NewPrivilegeService(privilegeRepo)
	jobSvc := service.NewJobService(jobRepo, clock)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)

	bookingHandler := api.NewBookingHandler(bookingSvc)
	reportHandler := api.NewReportHandler(reportSvc)
	privilegeHandler := api.NewPrivilegeHandler(privilegeSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	c := cron.New()
	if _, err := c.AddFunc("15 0 * * *", func() {
		if err := jobSvc.ExpireFinishedBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule expiry job: %v", err)
	}
	c.Start()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/spots", bookingHandler.SpotBoard).Methods("GET")
	r.HandleFunc("/api/spots/{id}/status", bookingHandler.SpotStatus).Methods("GET")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")
	r.HandleFunc("/api/reports/{year}/{month}", reportHandler.GetMonthlyReport).Methods("GET")
	r.HandleFunc("/api/reports/{year}/{month}/tenants.csv", reportHandler.TenantReportCSV).Methods("GET")
	r.HandleFunc("/api/reports/{year}/{month}/summary.pdf", reportHandler.MonthlyReportPDF).Methods("GET")
	r.HandleFunc("/api/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	admin.HandleFunc("/bookings/{id}", bookingHandler.UpdateBooking).Methods("PUT")
	admin.HandleFunc("/bookings/{id}", bookingHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/register", adminAuthHandler.Register).Methods("POST")
	admin.HandleFunc("/privileges", privilegeHandler.List).Methods("GET")
	admin.HandleFunc("/privileges/export", privilegeHandler.Export).Methods("GET")
	admin.HandleFunc("/privileges/import", privilegeHandler.Import).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}

func splitZones(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	zones := make([]string, 0, len(parts))
	for _, p := range parts {
		if z := strings.TrimSpace(p); z != "" {
			zones = append(zones, z)
		}
	}
	return zones
}

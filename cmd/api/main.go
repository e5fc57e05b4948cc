package main

import (
	"fmt"
	"net/http"

	"github.com/staffhub-dev/timeclock-backend-go/internal/config"
	appHTTP "github.com/staffhub-dev/timeclock-backend-go/internal/handler/http"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/database"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/jwt"
	"github.com/staffhub-dev/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffhub-dev/timeclock-backend-go/internal/service/attendance"
	authService "github.com/staffhub-dev/timeclock-backend-go/internal/service/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		userRepo,
		cfg.BusinessLocation(),
	)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		[]string{cfg.App.FrontendURL},
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

package main

import (
	"fmt"
	"net/http"

	"github.com/nexhr/worktime-backend-go/internal/config"
	appHTTP "github.com/nexhr/worktime-backend-go/internal/handler/http"
	"github.com/nexhr/worktime-backend-go/internal/pkg/cron"
	"github.com/nexhr/worktime-backend-go/internal/pkg/database"
	"github.com/nexhr/worktime-backend-go/internal/pkg/jwt"
	"github.com/nexhr/worktime-backend-go/internal/repository/postgresql"
	authService "github.com/nexhr/worktime-backend-go/internal/service/auth"
	punchService "github.com/nexhr/worktime-backend-go/internal/service/punch"
	worktimeService "github.com/nexhr/worktime-backend-go/internal/service/worktime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	summaryRepo := postgresql.NewDaySummaryRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveGrantRepo := postgresql.NewLeaveGrantRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	worktimeSvc := worktimeService.NewWorktimeService(db, punchRepo, summaryRepo, holidayRepo, leaveGrantRepo, policyRepo)
	punchSvc := punchService.NewPunchService(punchRepo, worktimeSvc)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	summaryHandler := appHTTP.NewSummaryHandler(worktimeSvc)

	scheduler := cron.NewScheduler()
	worktimeJobs := cron.NewWorktimeJobs(punchRepo, worktimeSvc, cfg.Cron.SweepInterval, cfg.Cron.SweepLookback)
	worktimeJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, punchHandler, summaryHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

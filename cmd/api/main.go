package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/shiftwise-hq/worktime-backend-go/internal/config"
	appHTTP "github.com/shiftwise-hq/worktime-backend-go/internal/handler/http"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/cron"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/jwt"
	"github.com/shiftwise-hq/worktime-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftwise-hq/worktime-backend-go/internal/service/attendance"
	authService "github.com/shiftwise-hq/worktime-backend-go/internal/service/auth"
	performanceService "github.com/shiftwise-hq/worktime-backend-go/internal/service/performance"
	recalculationService "github.com/shiftwise-hq/worktime-backend-go/internal/service/recalculation"
	shiftService "github.com/shiftwise-hq/worktime-backend-go/internal/service/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/workday"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftDefRepo := postgresql.NewShiftDefinitionRepository(db)
	shiftAssignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	performanceRepo := postgresql.NewPerformanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	resolver, err := workday.NewResolver(cfg.Workday.StartTime, cfg.Workday.RolloverTime)
	if err != nil {
		log.Fatal("Invalid workday configuration: ", err)
	}

	authSvc := authService.NewService(employeeRepo, jwtService)
	shiftSvc := shiftService.NewService(shiftDefRepo, shiftAssignmentRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo, shiftDefRepo, shiftSvc, resolver, nil)
	recalcSvc := recalculationService.NewService(attendanceRepo, shiftDefRepo, cfg.Recalculation.WindowDays, nil)
	performanceSvc := performanceService.NewService(performanceRepo, attendanceRepo, shiftDefRepo, nil)

	scheduler := cron.NewScheduler()
	recalcJobs := cron.NewRecalculationJobs(
		recalcSvc,
		performanceSvc,
		employeeRepo,
		cfg.Recalculation.Interval,
		cfg.Recalculation.PerformanceInterval,
		nil,
	)
	recalcJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	performanceHandler := appHTTP.NewPerformanceHandler(performanceSvc)
	recalculationHandler := appHTTP.NewRecalculationHandler(recalcSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		shiftHandler,
		performanceHandler,
		recalculationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

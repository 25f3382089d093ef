package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/crackwatch/monitor-service/internal/app"
	"github.com/crackwatch/monitor-service/internal/config"
	"github.com/crackwatch/monitor-service/internal/controllers"
	"github.com/crackwatch/monitor-service/internal/middleware"
	"github.com/crackwatch/monitor-service/internal/routes"
	"github.com/crackwatch/monitor-service/internal/services"
	"github.com/crackwatch/monitor-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application := app.NewApp(cfg)
	defer application.Close()

	buildingService := services.NewBuildingService(application.BuildingRepo)
	waypointService := services.NewWaypointService(application.BuildingRepo)
	measurementService := services.NewMeasurementService(application.BuildingRepo)

	var kakao services.KeywordSearcher
	if cfg.KakaoRESTAPIKey != "" {
		kakao = utils.NewKakaoClient(cfg.KakaoRESTAPIKey)
	}
	geocodeService := services.NewGeocodeService(kakao)

	escalationService := services.NewRiskEscalationService(cfg, application.BuildingRepo)

	buildingsController := controllers.NewBuildingsController(buildingService)
	waypointsController := controllers.NewWaypointsController(waypointService)
	measurementsController := controllers.NewMeasurementsController(measurementService)
	geocodeController := controllers.NewGeocodeController(geocodeService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogging)

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Buildings, buildingsController.ListBuildingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Buildings, buildingsController.CreateBuildingHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BuildingsNearby, buildingsController.NearbyBuildingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingByID, buildingsController.DeleteBuildingHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Waypoints, waypointsController.ListWaypointsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.WaypointImages, waypointsController.WaypointImagesHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Measurements, measurementsController.ListMeasurementsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Measurements, measurementsController.AppendMeasurementHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.GeocodeSearch, geocodeController.SearchHandler).Methods(http.MethodGet)

	c := cron.New()
	_, backupErr := c.AddFunc("5 0 * * *", func() {
		if e := escalationService.RunDailyBackup(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled data-file backup failed")
		}
	})
	if backupErr != nil {
		utils.Logger.WithError(backupErr).Fatal("Failed to schedule backup cron")
	}

	_, sweepErr := c.AddFunc(fmt.Sprintf("@every %s", cfg.RiskSweepInterval), func() {
		if e := escalationService.RunRiskSweep(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Risk sweep failed")
		}
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule risk sweep cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("crackwatch-monitor failed to start:", err)
	}
}

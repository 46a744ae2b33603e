package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/handler"
	"github.com/campushub/timetable-api/internal/middleware"
	"github.com/campushub/timetable-api/internal/repository"
	"github.com/campushub/timetable-api/internal/service"
	"github.com/campushub/timetable-api/pkg/cache"
	"github.com/campushub/timetable-api/pkg/config"
	"github.com/campushub/timetable-api/pkg/database"
	"github.com/campushub/timetable-api/pkg/logger"
	corsmiddleware "github.com/campushub/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/timetable-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, stats caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.StatsTTL, logr, cacheRepo != nil)

	validate := validator.New()

	timetableRepo := repository.NewTimetableRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)

	slotSvc := service.NewSlotService(slotRepo, timetableRepo, courseRepo, roomRepo, db, cacheSvc, metricsSvc, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, slotRepo, departmentRepo, slotSvc, db, cacheSvc, cfg.Cache.StatsTTL, validate, logr)
	exportSvc := service.NewExportService(timetableSvc, slotRepo, logr)

	timetableHandler := handler.NewTimetableHandler(timetableSvc, slotSvc, exportSvc)
	slotHandler := handler.NewSlotHandler(slotSvc)
	referenceHandler := handler.NewReferenceHandler(teacherRepo, roomRepo)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		timetables := api.Group("/timetables")
		{
			timetables.GET("", timetableHandler.List)
			timetables.POST("", timetableHandler.Create)
			timetables.GET("/:id", timetableHandler.Get)
			timetables.PATCH("/:id", timetableHandler.Update)
			timetables.DELETE("/:id", timetableHandler.Delete)
			timetables.POST("/:id/publish", timetableHandler.Publish)
			timetables.POST("/:id/archive", timetableHandler.Archive)
			timetables.POST("/:id/clone", timetableHandler.Clone)
			timetables.GET("/:id/stats", timetableHandler.Stats)
			timetables.GET("/:id/export", timetableHandler.Export)
			timetables.GET("/:id/slots", timetableHandler.ListSlots)
		}

		slots := api.Group("/slots")
		{
			slots.GET("", slotHandler.List)
			slots.POST("", slotHandler.Create)
			slots.POST("/bulk", slotHandler.BulkCreate)
			slots.POST("/check-conflicts", slotHandler.CheckConflicts)
			slots.GET("/:id", slotHandler.Get)
			slots.PATCH("/:id", slotHandler.Update)
			slots.DELETE("/:id", slotHandler.Delete)
		}

		api.GET("/teachers/:id", referenceHandler.GetTeacher)
		api.GET("/rooms", referenceHandler.ListAvailableRooms)
		api.GET("/rooms/:id", referenceHandler.GetRoom)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

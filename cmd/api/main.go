package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "instantcredit-backend/internal/adapter/http"
	mw "instantcredit-backend/internal/adapter/middleware"
	"instantcredit-backend/internal/adapter/repository/mysql"
	"instantcredit-backend/internal/config"
	"instantcredit-backend/internal/infrastructure/cache"
	"instantcredit-backend/internal/infrastructure/db"
	appuc "instantcredit-backend/internal/usecase/application"
	authuc "instantcredit-backend/internal/usecase/auth"
	useruc "instantcredit-backend/internal/usecase/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	appRepo := mysql.NewApplicationRepository(gormDB)
	userRepo := mysql.NewUserRepository(gormDB)
	profileRepo := mysql.NewProfileRepository(gormDB)
	tx := mysql.NewGormUoW(gormDB)

	applications := appuc.NewUsecase(appRepo, profileRepo, tx)
	users := useruc.NewUsecase(userRepo, tx)
	auth := authuc.NewUsecase(userRepo, []byte(cfg.JWTSecret))

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(auth)
	appH := httpadp.NewApplicationHandler(applications)
	adminH := httpadp.NewAdminHandler(users, applications)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(mw.RateLimit(rdb, mw.RateLimitConfig{
		Window: time.Duration(cfg.RateLimitWindowSecs) * time.Second,
		Max:    cfg.RateLimitMax,
	}))

	secret := []byte(cfg.JWTSecret)

	// routes
	e.GET("/health", h.Health)
	e.POST("/api/auth/login", authH.Login)

	apps := e.Group("/api/applications", mw.JWT(secret))
	apps.POST("", appH.Submit)
	apps.GET("", appH.List)
	apps.GET("/:application_id", appH.Get)
	apps.POST("/:application_id/documents", appH.AddDocument)

	admin := e.Group("/api/admin", mw.JWT(secret), mw.RequireRole("admin"))
	admin.POST("/users", adminH.CreateUser)
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/users/:user_id", adminH.GetUser)
	admin.PUT("/users/:user_id", adminH.UpdateUser)
	admin.DELETE("/users/:user_id", adminH.DeleteUser)
	admin.GET("/applications/pending", adminH.ListPendingApplications)
	admin.GET("/applications/:application_id", adminH.GetApplication)
	admin.PUT("/applications/:application_id/review", adminH.ReviewApplication)
	admin.PUT("/applications/:application_id/documents/:document_id/verify", adminH.VerifyDocument)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tripkin/tripkin-api/internal/config"
	"github.com/tripkin/tripkin-api/internal/database"
	"github.com/tripkin/tripkin-api/internal/handlers"
	authmw "github.com/tripkin/tripkin-api/internal/middleware"
	"github.com/tripkin/tripkin-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	circleService := services.NewCircleService(db)
	tripService := services.NewTripService(db)
	scheduleService := services.NewScheduleService(db, tripService)

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	circleHandler := handlers.NewCircleHandler(circleService, userService)
	tripHandler := handlers.NewTripHandler(tripService, circleService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, tripService, circleService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/circles", circleHandler.List)
	protected.Post("/circles", circleHandler.Create)
	protected.Get("/circles/:id", circleHandler.Get)
	protected.Patch("/circles/:id", circleHandler.Update)
	protected.Delete("/circles/:id", circleHandler.Delete)
	protected.Get("/circles/:id/members", circleHandler.GetMembers)
	protected.Post("/circles/:id/members", circleHandler.InviteMember)
	protected.Delete("/circles/:id/invites/:inviteId", circleHandler.CancelInvite)
	protected.Delete("/circles/:id/members/:memberId", circleHandler.RemoveMember)
	protected.Post("/circles/:id/leave", circleHandler.LeaveCircle)

	protected.Get("/invites", circleHandler.ListMyInvites)
	protected.Post("/invites/:inviteId/accept", circleHandler.AcceptInvite)
	protected.Post("/invites/:inviteId/decline", circleHandler.DeclineInvite)

	protected.Get("/circles/:id/trips", tripHandler.ListCircleTrips)
	protected.Post("/circles/:id/trips", tripHandler.Create)
	protected.Get("/trips/:tripId", tripHandler.Get)
	protected.Post("/trips/:tripId/join", tripHandler.Join)
	protected.Post("/trips/:tripId/leave", tripHandler.Leave)
	protected.Post("/trips/:tripId/open-scheduling", tripHandler.OpenScheduling)
	protected.Post("/trips/:tripId/open-voting", tripHandler.OpenVoting)
	protected.Post("/trips/:tripId/lock", tripHandler.Lock)
	protected.Post("/trips/:tripId/cancel", tripHandler.Cancel)
	protected.Post("/trips/:tripId/complete", tripHandler.Complete)

	protected.Get("/trips/:tripId/schedule", scheduleHandler.GetScheduleView)
	protected.Post("/trips/:tripId/availability", scheduleHandler.SubmitAvailability)
	protected.Get("/trips/:tripId/availability", scheduleHandler.GetMyAvailability)
	protected.Post("/trips/:tripId/picks", scheduleHandler.SubmitDatePicks)
	protected.Post("/trips/:tripId/votes", scheduleHandler.SubmitVote)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/config"
	"github.com/wardpulse/realtime-gateway/internal/auth"
	"github.com/wardpulse/realtime-gateway/internal/directory"
	"github.com/wardpulse/realtime-gateway/internal/gateway"
	"github.com/wardpulse/realtime-gateway/internal/handlers"
	"github.com/wardpulse/realtime-gateway/internal/middleware"
	"github.com/wardpulse/realtime-gateway/internal/outbox"
	"github.com/wardpulse/realtime-gateway/internal/redis"
)

func main() {
	cfg := config.Load()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx := context.Background()

	// User directory backs the handshake identity check.
	dir, closeMongo, err := directory.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer closeMongo()
	log.Info("MongoDB connection established")

	// Redis mirror is best-effort observability; run without it if down.
	var mirror *redis.Mirror
	if cfg.Redis.Enabled {
		mirror, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.WithField("error", err).Warn("Redis unavailable, signaling mirror disabled")
		} else {
			defer mirror.Close()
			log.Info("Redis connection established")
		}
	}

	// Durable outbox only when brokers are configured.
	var sink outbox.Sink = outbox.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink := outbox.NewKafka(cfg.Kafka)
		defer kafkaSink.Close()
		sink = kafkaSink
		log.WithField("topic", cfg.Kafka.Topic).Info("Kafka outbox enabled")
	}

	authenticator := auth.New(cfg.JWTSecret, dir)
	gw := gateway.New(sink, mirror)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Global CORS middleware (runs before routing)
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/status", handlers.Status(gw))

		// Presence queries require the same credential as a connection.
		presenceGroup := apiGroup.Group("/presence", middleware.RequireAuth(authenticator))
		{
			presenceGroup.GET("", handlers.Presence(gw))
			presenceGroup.GET("/roles/:role", handlers.PresenceByRole(gw))
			presenceGroup.GET("/departments/:department", handlers.PresenceByDepartment(gw))
		}
	}

	// WebSocket endpoint for the dashboard's realtime channel
	router.GET("/ws", handlers.ServeWS(gw, authenticator))

	log.Infof("Starting realtime gateway on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

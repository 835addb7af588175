package main

import (
	"context"
	"log"
	"os"
	"time"

	"devboard/internal/db"
	"devboard/internal/middleware"
	"devboard/internal/router"
	"devboard/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Redis backs the unique-view tracker
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	cancel()
	services.InitViewTracker(rdb)

	// MinIO blob store for post images; uploads stay disabled without creds
	var images *services.ImageStore
	if os.Getenv("MINIO_ACCESS_KEY") != "" {
		storeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		images, err = services.NewImageStore(storeCtx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to minio: %v", err)
		}
	} else {
		log.Println("MINIO_ACCESS_KEY not set, image uploads disabled")
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("devboard_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r, images)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("devboard server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

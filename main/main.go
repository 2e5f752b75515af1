package main

import (
	"log"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"eventgallery/config"
	"eventgallery/db"
	"eventgallery/main/routes"
	"eventgallery/uploads"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(429, gin.H{"message": "Too many requests. Try again in " + time.Until(info.ResetTime).String()})
}

// Initialize the HTTP server
func main() {
	// Load .env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	if config.SessionSecret() == "" {
		log.Fatal("SESSION_SECRET must be set")
	}

	// Init DB
	db.GalleryDB, err = db.InitDB(config.DBFile())
	if err != nil {
		log.Fatal("Error opening database:", err)
	}
	defer db.CloseDB(db.GalleryDB)

	if err := db.EnsureSchema(); err != nil {
		log.Fatal("Error ensuring schema:", err)
	}
	if err := uploads.EnsureDir(); err != nil {
		log.Fatal("Error creating upload dir:", err)
	}

	// Setup Gin
	r := gin.Default()

	// Rate Limit
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 100, // Each ip can make 100 requests per second
	})
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimitErrorHandler,
		KeyFunc:      keyFunc,
	})
	r.Use(mw)

	// Browser frontends run on another origin during development
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Serve stored uploads
	r.Static("/uploads", config.UploadDir())

	routes.SetupAPIRoutes(r)

	if err := r.Run(":" + config.Port()); err != nil {
		log.Fatal("Server error:", err)
	}
}

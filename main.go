package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"socialfeed/config"
	"socialfeed/database"
	"socialfeed/handlers"
	"socialfeed/routes"
	"socialfeed/services"
	"socialfeed/store"
	"socialfeed/upload"
)

func main() {
	log.Println("🚀 Starting Social Feed API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration error: ", err)
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var client *mongo.Client
	var db *mongo.Database
	for i := 1; i <= 3; i++ {
		client, db, err = database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err == nil {
			break
		}
		log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("❌ Failed to connect to MongoDB: ", err)
	}

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("❌ Failed to create indexes: ", err)
	}
	log.Println("✅ MongoDB connected and indexes ensured")

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ===== WIRING =====
	users := store.NewMongoUserStore(db, cfg.StorageTimeout)
	posts := store.NewMongoPostStore(db, cfg.StorageTimeout)

	identity := services.NewIdentity(users, cfg.JWTSecret, cfg.BcryptCost, cfg.JWTTTL)
	postSvc := services.NewPosts(posts)

	var uploader handlers.ImageUploader
	if cfg.CloudinaryURL != "" {
		cld, err := upload.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("❌ Cloudinary configuration error: ", err)
		}
		uploader = cld
		log.Println("✅ Cloudinary image uploads enabled")
	} else {
		log.Println("⚠️ CLOUDINARY_URL not set, image uploads disabled")
	}

	router := routes.SetupRouter(identity, handlers.NewAuth(identity), handlers.NewPosts(postSvc, uploader), cfg.CORSOrigins)

	// ===== SERVER =====
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown: ", err)
	}

	database.Disconnect(client)
	log.Println("👋 Server stopped gracefully")
}

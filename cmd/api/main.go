package main

import (
	"context"
	"log"
	"os"

	"SiDispo/config"
	"SiDispo/routes"
	"SiDispo/utils/fcm"
	"SiDispo/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnv()

	db := config.ConnectDB()
	storage.InitS3Client()

	ctx := context.Background()
	fcm.Init(ctx)
	go fcm.StartNotifierConsumer(ctx)

	app := fiber.New(fiber.Config{
		AppName:   "SiDispo API",
		BodyLimit: 25 * 1024 * 1024, // lampiran multipart
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 SiDispo API listening on :" + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

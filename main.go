package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lostfound-hub/api-go/config"
	"github.com/lostfound-hub/api-go/routes"
	"github.com/lostfound-hub/api-go/scheduler"
)

func main() {
	log := config.GetLogger()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	db, err := config.InitDB()
	if err != nil {
		log.WithError(err).Fatal("database initialization failed")
	}

	r := gin.Default()

	routes.SetupRoutes(r, db, log)

	jobs := scheduler.NewScheduler(db, log)
	jobs.Start()
	defer jobs.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/bookhive/library-service/app"
	"github.com/bookhive/library-service/config"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	cfg := config.NewConfig()
	app.Run(cfg)
}

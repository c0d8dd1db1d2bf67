package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/bookhive/library-service/config"
	"github.com/bookhive/library-service/notifier"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	cfg := config.NewConfig()
	notifier.Run(cfg)
}

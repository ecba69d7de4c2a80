package main

import (
	"flag"
	"log"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/app"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config file or directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	application.Run()
}

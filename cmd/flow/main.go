package main

import (
	"PayFlow/config"
	"PayFlow/internal/flow"
	"log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	flow.Run(cfg)
}

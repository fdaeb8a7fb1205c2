package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"gridscope/cfg"
	"gridscope/core/api"
	"gridscope/core/pipeline"
)

func main() {
	// .env is optional; env vars win either way.
	_ = godotenv.Load()

	c := cfg.Default()
	if path := os.Getenv("GRIDSCOPE_CONFIG"); path != "" {
		var err error
		c, err = cfg.Load(path)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if addr := os.Getenv("GRIDSCOPE_ADDR"); addr != "" {
		c.API.Addr = addr
	}

	p, err := pipeline.New(c)
	if err != nil {
		log.Fatalf("pipeline setup failed: %v", err)
	}

	log.Printf("serving on %v", c.API.Addr)
	err = api.Start(api.APIConfig{
		API:      c.API,
		Pipeline: p,
	})
	if err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	_ "pinboard/docs"
	"pinboard/internal/config"
	"pinboard/internal/server"
)

// @title           Pinboard API
// @version         1.0
// @description     API for sharing image pins on public and private boards.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}

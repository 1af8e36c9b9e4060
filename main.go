package main

import (
	"github.com/cinematik/backend/config"
	"github.com/cinematik/backend/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}

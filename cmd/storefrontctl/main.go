package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/cyberacademy/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}
	cli.Execute()
}

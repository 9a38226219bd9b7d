package main

import (
	"log"

	"github.com/hassanmehmood/medicart/internal/server"

	_ "github.com/hassanmehmood/medicart/database/migrations"
	_ "github.com/hassanmehmood/medicart/database/seeders"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}

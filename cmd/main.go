package main

import (
	"log"

	"github.com/Badsnus/cu-events-portal/cmd/app"
	"github.com/Badsnus/cu-events-portal/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()

	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err = a.Start(); err != nil {
		log.Panic(err)
	}
}

package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/o001705/EF/config"
)

func main() {
	store := NewStatusStore()
	server := NewServer(store, config.TokenKey())

	rl := NewRateLimiter(
		config.GetenvInt("CALLBACK_RATE_RPS", 5),
		config.GetenvInt("CALLBACK_RATE_BURST", 10),
	)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(rl.Middleware)
	r.Mount("/", server.Routes())

	addr := config.Getenv("MERCHANT_ADDR", ":8002")
	log.Printf("Starting merchant callback receiver on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
}

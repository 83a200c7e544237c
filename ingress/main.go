// The ingress is the bank's REST facade: it validates requests and maps
// the public JSON-over-HTTP surface onto the Restate services that own
// the actual state.
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	restateingress "github.com/restatedev/sdk-go/ingress"

	"github.com/o001705/EF/config"
)

func main() {
	restateURL := config.Getenv("RESTATE_INGRESS_URL", "http://localhost:8080")
	ingress := &Ingress{client: restateingress.NewClient(restateURL)}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			req.Body = http.MaxBytesReader(w, req.Body, 1<<20)
			next.ServeHTTP(w, req)
		})
	})

	r.Route("/ledger", func(r chi.Router) {
		r.Get("/customer/{phone}", ingress.handleGetCustomer)
		r.Post("/kyc", ingress.handleKYC)
		r.Post("/credit-check", ingress.handleCreditCheck)
		r.Get("/offers", ingress.handleGetOffers)
		r.Get("/personalized-offers", ingress.handlePersonalizedOffers)
		r.Post("/onboard", ingress.handleOnboard)
		r.Post("/originate", ingress.handleOriginate)
		r.Post("/score", ingress.handleSetScore)
		r.Post("/loyalty", ingress.handleGrantLoyalty)
	})

	r.Route("/flow/{txn}", func(r chi.Router) {
		r.Post("/start", ingress.handleFlowStart)
		r.Post("/phone", ingress.handleFlowPhone)
		r.Post("/kyc", ingress.handleFlowKYC)
		r.Post("/offer", ingress.handleFlowOffer)
		r.Get("/", ingress.handleFlowGet)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := config.Getenv("INGRESS_ADDR", ":8001")
	log.Printf("Starting bank ingress on %s, restate=%s", addr, restateURL)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
}

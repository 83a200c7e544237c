package main

import (
	"context"
	"fmt"
	"log"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/server"

	"github.com/o001705/EF/config"
)

func main() {
	addr := config.Getenv("ORCHESTRATOR_ADDR", ":9080")

	fmt.Println("Starting Checkout Orchestrator on", addr)
	fmt.Println("")
	fmt.Println("Virtual Object: LoanTransaction (keyed by transaction id)")
	fmt.Println("  Start, CapturePhone, SubmitKYC, SelectOffer,")
	fmt.Println("  GetTransaction, FindTransaction")
	fmt.Println("Virtual Object: Notifier (keyed by transaction id)")
	fmt.Println("  Deliver, GetDelivery")

	if err := server.NewRestate().
		Bind(restate.Reflect(LoanTransaction{})).
		Bind(restate.Reflect(Notifier{})).
		Start(context.Background(), addr); err != nil {
		log.Fatal("Server error:", err)
	}
}

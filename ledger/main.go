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
	addr := config.Getenv("LEDGER_ADDR", ":9081")

	fmt.Println("Starting Bank Ledger Service on", addr)
	fmt.Println("")
	fmt.Println("Virtual Object: Ledger (keyed by phone number)")
	fmt.Println("  Exclusive: VerifyKYC, CheckCredit, OnboardCustomer,")
	fmt.Println("             OriginateLoan, SetCreditScore, GrantLoyaltyPoints")
	fmt.Println("  Shared:    GetCustomer, FindCustomer, GetLoanOffers,")
	fmt.Println("             GetPersonalizedOffers, GetLoyaltyPoints")

	if err := server.NewRestate().
		Bind(restate.Reflect(Ledger{})).
		Start(context.Background(), addr); err != nil {
		log.Fatal("Server error:", err)
	}
}

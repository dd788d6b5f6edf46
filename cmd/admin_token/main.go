package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lottery-secretary/internal/config"
	"lottery-secretary/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("subject", "", "operator name recorded in the token (required)")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ADMIN_JWT_TTL_MINUTES)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}
	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: admin_token -subject <name> [-ttl 1h]")
		os.Exit(2)
	}

	cfg, err := config.LoadAdminTokenConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tokens := service.NewAdminTokenService(cfg.AdminJWTSecret, time.Duration(cfg.AdminJWTTTLMinutes)*time.Minute)
	token, expiresAt, err := tokens.Issue(*subject, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}

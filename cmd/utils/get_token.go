package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"booking-service/internal/infrastructure/config"
	"booking-service/internal/infrastructure/oauth"
	"booking-service/pkg/logger"
)

// Prints a Gmail refresh token with the send scope for GMAIL_REFRESH_TOKEN.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.GmailClientID == "" || cfg.GmailClientSecret == "" {
		log.Fatal("GMAIL_CLIENT_ID and GMAIL_CLIENT_SECRET must be set")
	}

	appLogger := logger.NewLogger(cfg.LogLevel)
	defer appLogger.Sync()

	auth := oauth.NewReceiptAuth(oauth.Credentials{
		ClientID:     cfg.GmailClientID,
		ClientSecret: cfg.GmailClientSecret,
		RedirectURL:  "http://localhost:8090/oauth2callback",
	}, appLogger)

	http.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		token, err := auth.Exchange(context.Background(), q.Get("state"), q.Get("code"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out, err := oauth.FormatToken(token)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Printf("\nGMAIL_REFRESH_TOKEN=%s\n\n%s\n", token.RefreshToken, out)

		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		os.Exit(0)
	})

	fmt.Printf("Open this URL in your browser:\n%s\n", auth.ConsentURL())
	log.Fatal(http.ListenAndServe(":8090", nil))
}

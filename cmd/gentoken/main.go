// Command gentoken mints a session token for a user id, using the same
// secret and lifetime as the running server. Useful for local API testing
// without going through the login flow.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gatherly/server/internal/auth"
)

func main() {
	userID := flag.String("user", "", "user id (uuid) to issue the token for")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	issuer := flag.String("issuer", "gatherly", "token issuer claim")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: gentoken --user <uuid> [--expiry 24h] [--issuer gatherly]")
		os.Exit(2)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(secret, *expiry, *issuer).Generate(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

// Command token mints an access token for local use. Accounts live outside
// this service, so operators issue tokens with the shared JWT secret.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
)

func main() {
	var (
		userID = flag.String("user", "", "Subject stored in the user_id claim")
		role   = flag.String("role", string(jwt.RoleViewer), "Token role: admin or viewer")
		ttl    = flag.String("ttl", "", "Token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME or 1h")
	)
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}
	if *userID == "" {
		log.Fatal("-user is required")
	}
	if !jwt.Role(*role).IsValid() {
		log.Fatalf("unknown role %q", *role)
	}

	lifetime := *ttl
	if lifetime == "" {
		lifetime = os.Getenv("JWT_ACCESS_EXPIRATION_TIME")
	}
	if lifetime == "" {
		lifetime = "1h"
	}

	token, expiresAt, err := jwt.NewJWTService(secret, lifetime).GenerateAccessToken(*userID, jwt.Role(*role))
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}

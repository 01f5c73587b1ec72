// Command devtoken mints a bearer token for local testing, signed with
// JWT_SECRET from the environment or .env.
//
//	go run ./cmd/devtoken -user counsellor-1 -role counsellor
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"mindwell/internal/config"
	"mindwell/internal/middleware/auth"
)

func main() {
	user := flag.String("user", "", "user id placed in the token (required)")
	role := flag.String("role", auth.RoleStudent, "student, counsellor or admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *user == "" {
		log.Fatal("-user is required")
	}
	switch *role {
	case auth.RoleStudent, auth.RoleCounsellor, auth.RoleAdmin:
	default:
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	token, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer).Issue(*user, *role, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}

// Ad-hoc maintenance: set a user's password directly in the database.
//
//	go run ./scripts/reset_password -email user@example.com -password 'NewPass1!'
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go-social-backend/config"
	"go-social-backend/pkg/database"
	"go-social-backend/pkg/password"
)

func main() {
	email := flag.String("email", "", "email of the account to reset")
	newPassword := flag.String("password", "", "new password (must meet the complexity policy)")
	flag.Parse()

	if *email == "" || *newPassword == "" {
		log.Fatal("both -email and -password are required")
	}
	if !password.IsComplex(*newPassword) {
		log.Fatal("password does not meet the complexity policy (8+ chars, upper, lower, digit, symbol)")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	hash, err := password.Hash(*newPassword)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	ctx := context.Background()
	tag, err := pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE email = $2`, hash, *email)
	if err != nil {
		log.Fatalf("update: %v", err)
	}
	if tag.RowsAffected() == 0 {
		log.Fatalf("no user with email %s", *email)
	}

	fmt.Printf("Password reset for %s\n", *email)
}

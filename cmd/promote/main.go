// Command promote changes a user's role by email address. It is used to
// bootstrap the first admin, who can then manage roles over the API.
//
// Usage:
//
//	promote --email=user@example.com [--role=admin]
//
// Configuration is loaded the same way as the server (config file, .env, ENV).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/ireporter-backend/internal/config"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	role := flag.String("role", string(domain.UserRoleAdmin), "role to assign (user or admin)")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--role=admin]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	u, err := user.New(pool).SetRoleByEmail(ctx, *email, domain.UserRole(*role))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fmt.Printf("No user found with email %q.\n", *email)
		os.Exit(1)
	case err != nil:
		log.Fatalf("update role: %v", err)
	}

	fmt.Printf("User %q (%s) is now %s.\n", u.Email, u.ID, u.Role)
}

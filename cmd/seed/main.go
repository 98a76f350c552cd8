// seed inserts a confirmed test user with a few budgets and expenses into the
// local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/nursultanov/budgetbook/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "password123"
)

type budgetSpec struct {
	name     string
	amount   float64
	expenses []expenseSpec
}

type expenseSpec struct {
	name   string
	amount float64
}

var budgets = []budgetSpec{
	{"Groceries", 600, []expenseSpec{
		{"Weekly shop", 112.40},
		{"Farmers market", 38.25},
		{"Coffee beans", 18.90},
	}},
	{"Rent & utilities", 1850, []expenseSpec{
		{"Rent", 1500},
		{"Electricity", 84.12},
		{"Internet", 49.99},
	}},
	{"Fun money", 250, []expenseSpec{
		{"Cinema", 24},
		{"Board game", 45.50},
	}},
	{"Vacation fund", 1200, nil},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(dbURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert a confirmed user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, confirmed)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		uuid.NewString(), "Seed User", seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var budgetCount, expenseCount int
	for _, b := range budgets {
		var budgetID string
		err := pool.QueryRow(ctx, `
			INSERT INTO budgets (id, name, amount, owner_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			uuid.NewString(), b.name, b.amount, userID,
		).Scan(&budgetID)
		if err != nil {
			log.Fatalf("insert budget %q: %v", b.name, err)
		}
		budgetCount++

		for _, e := range b.expenses {
			_, err := pool.Exec(ctx, `
				INSERT INTO expenses (id, name, amount, budget_id)
				VALUES ($1, $2, $3, $4)`,
				uuid.NewString(), e.name, e.amount, budgetID,
			)
			if err != nil {
				log.Fatalf("insert expense %q: %v", e.name, err)
			}
			expenseCount++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s  (password: %s)\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Budgets:  %d  Expenses: %d\n", budgetCount, expenseCount)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("    export JWT=eyJ...   # token from the response")
	fmt.Println("    curl -s http://localhost:8080/budgets -H \"Authorization: Bearer $JWT\"")
}

package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/hirewire/hirewire-api/config"
	"github.com/hirewire/hirewire-api/pkg/helpers"
)

// Seeds the initial admin account. Admin is not self-assignable through the
// register endpoint, so the first admin has to come from here.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := envOr("SEED_ADMIN_EMAIL", "admin@hirewire.dev")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme123")
	name := envOr("SEED_ADMIN_NAME", "Platform Admin")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role, is_active, is_verified)
		VALUES ($1, lower($2), $3, 'admin', true, true)
		ON CONFLICT ((lower(email))) DO UPDATE SET name = EXCLUDED.name, role = 'admin', is_active = true
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

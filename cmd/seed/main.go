package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/samirrijal/fitpass/internal/adapters/postgres"
	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/pkg/config"
)

// Seeds the initial admin account. Registration over the API only ever
// creates MEMBER users, so the first admin has to come from here.
func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load("fitpass-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	email := os.Getenv("FITPASS_ADMIN_EMAIL")
	password := os.Getenv("FITPASS_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("FITPASS_ADMIN_EMAIL and FITPASS_ADMIN_PASSWORD are required")
	}
	if len(password) < 6 {
		log.Fatal("admin password must be at least 6 characters")
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	users := postgres.NewUserRepo(db)

	if existing, err := users.GetByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("Admin %s already exists (id=%s), nothing to do", email, existing.ID)
		return
	} else if err != nil && !errors.Is(err, domain.ErrResourceNotFound) {
		log.Fatalf("lookup admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Admin created: %s (id=%s)", admin.Email, admin.ID)
}

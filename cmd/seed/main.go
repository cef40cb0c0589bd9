package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/user-account-service/config"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

type seedUser struct {
	email     string
	first     string
	last      string
	phone     string
	birthdate string // YYYY-MM-DD, empty for none
	lat       float64
	lon       float64
	about     string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	users := []seedUser{
		{"alice@example.com", "Alice", "Anderson", "+14155550100", "1990-04-12", 40.7128, -74.0060, "Coffee first."},
		{"bob@example.com", "Bob", "Brown", "+14155550101", "2012-09-30", 51.5074, -0.1278, ""},
		{"carol@example.com", "Carol", "Clark", "+14155550102", "", 48.8566, 2.3522, "Still filling this in."},
	}

	for _, su := range users {
		salt, err := helpers.GenerateSalt()
		if err != nil {
			log.Fatalf("failed to generate salt: %v", err)
		}
		hash, err := helpers.HashPassword(salt, password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		var birthdate *time.Time
		if su.birthdate != "" {
			bd, err := time.Parse("2006-01-02", su.birthdate)
			if err != nil {
				log.Fatalf("bad birthdate for %s: %v", su.email, err)
			}
			birthdate = &bd
		}

		var id string
		err = db.QueryRow(`
			INSERT INTO users (email, password_salt, password_hash, first_name, last_name,
				birthdate, phone_number, latitude, longitude, about_me, created_at, is_deleted)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), FALSE)
			ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name
			RETURNING id
		`, su.email, salt, hash, su.first, su.last, birthdate, su.phone, su.lat, su.lon, su.about).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", su.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, su.email, password)
	}
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo user and starter categories for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		demoEmail := "demo@mail.com"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists:", demoEmail)
			return
		}

		if err := db.Exec(
			"INSERT INTO users (email, password_hash, first_name, last_name, balance, created_at, updated_at) VALUES (?, ?, ?, ?, 0, now(), now())",
			demoEmail, string(hash), "Demo", "User",
		).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", demoEmail)

		var userID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", demoEmail).Row().Scan(&userID); err != nil {
			log.Fatalf("failed to read demo user id: %v", err)
		}

		for _, name := range []string{"Groceries", "Rent", "Savings"} {
			if err := db.Exec(
				"INSERT INTO categories (user_id, name, balance, created_at, updated_at) VALUES (?, ?, 0, now(), now())",
				userID, name,
			).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", name, err)
			}
			fmt.Println("Seeded category:", name)
		}
	},
}

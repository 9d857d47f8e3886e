package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormPostgres.Open(cfg.Database.Source), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"alerts", "work_orders", "assets", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"astrid@plantworks.example", "Astrid Admin", "admin"},
			{"edi@plantworks.example", "Edi Engineer", "engineer"},
			{"tono@plantworks.example", "Tono Technician", "technician"},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, first_login, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, true, now(), now())",
				u.Email, u.Name, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded %s user: %s\n", u.Role, u.Email)
		}

		assets := []struct {
			Tag         string
			Name        string
			Location    string
			Criticality string
		}{
			{"PUMP-001", "Boiler feed pump", "Hall A", "high"},
			{"CONV-001", "Packaging conveyor", "Hall B", "medium"},
			{"FAN-002", "Exhaust fan", "Roof", "low"},
			{"COMP-003", "Air compressor", "Utility room", "high"},
		}

		for _, a := range assets {
			var exists int
			row := db.Raw("SELECT 1 FROM assets WHERE tag = ?", a.Tag).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO assets (tag, name, location, status, criticality, is_active, created_at, updated_at) VALUES (?, ?, ?, 'operational', ?, true, now(), now())",
				a.Tag, a.Name, a.Location, a.Criticality,
			).Error; err != nil {
				log.Fatalf("failed to insert asset %s: %v", a.Tag, err)
			}
			fmt.Printf("Seeded asset: %s\n", a.Tag)
		}

		fmt.Println("Seeding complete")
	},
}

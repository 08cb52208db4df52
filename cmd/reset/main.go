package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/config"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/db"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("reset failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	if !strings.EqualFold(os.Getenv("CONFIRM_RESET"), "true") {
		return fmt.Errorf("refusing to wipe data; set CONFIRM_RESET=true to proceed")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	// Donations first to respect the foreign key.
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Donation{}).Error; err != nil {
			return fmt.Errorf("delete donations: %w", err)
		}
		log.Printf("deleted all donations")
		if err := tx.Where("1 = 1").Delete(&model.Account{}).Error; err != nil {
			return fmt.Errorf("delete accounts: %w", err)
		}
		log.Printf("deleted all accounts")
		return nil
	})
}

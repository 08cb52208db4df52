package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/config"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/db"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedAccount struct {
	name     string
	referrer string // name of the referrer, empty for roots
}

type seedDonation struct {
	name   string
	amount string
}

var seedAccounts = []seedAccount{
	{name: "alice"},
	{name: "bob"},
	{name: "charlie", referrer: "alice"},
	{name: "diana", referrer: "alice"},
	{name: "eve", referrer: "bob"},
	{name: "frank", referrer: "charlie"},
	{name: "grace", referrer: "charlie"},
	{name: "henry", referrer: "diana"},
}

var seedDonations = []seedDonation{
	{name: "alice", amount: "100.00"},
	{name: "alice", amount: "50.00"},
	{name: "bob", amount: "75.00"},
	{name: "charlie", amount: "25.00"},
	{name: "diana", amount: "150.00"},
	{name: "eve", amount: "200.00"},
	{name: "frank", amount: "30.00"},
	{name: "grace", amount: "45.00"},
	{name: "henry", amount: "60.00"},
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Account{}, &model.Donation{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.Model(&model.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 && !strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		log.Printf("accounts already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		ids := make(map[string]uint64, len(seedAccounts))
		for _, sa := range seedAccounts {
			a := model.Account{
				Name:         sa.name,
				ReferralCode: uuid.NewString(),
			}
			if sa.referrer != "" {
				refID, ok := ids[sa.referrer]
				if !ok {
					return fmt.Errorf("referrer %q seeded after %q", sa.referrer, sa.name)
				}
				a.ReferrerID = &refID
			}
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("create account %q: %w", sa.name, err)
			}
			ids[sa.name] = a.ID
			log.Printf("created account %s (id=%d)", sa.name, a.ID)
		}
		for _, sd := range seedDonations {
			amount, err := decimal.NewFromString(sd.amount)
			if err != nil {
				return fmt.Errorf("parse amount %q: %w", sd.amount, err)
			}
			d := model.Donation{
				AccountID: ids[sd.name],
				Amount:    amount,
			}
			if err := tx.Create(&d).Error; err != nil {
				return fmt.Errorf("create donation for %q: %w", sd.name, err)
			}
			log.Printf("created donation %s from %s", sd.amount, sd.name)
		}
		return nil
	})
}

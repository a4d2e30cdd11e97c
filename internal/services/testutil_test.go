package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goodness_grid/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.DonorProfile{},
		&models.NgoProfile{},
		&models.VolunteerProfile{},
		&models.Donation{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@test.local",
		Password: "x",
		Phone:    "0700000000",
		Address:  name + " street",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

func seedDonation(t *testing.T, db *gorm.DB, donorID uint, donationType, description, quantity string, status models.DonationStatus, createdAt time.Time) models.Donation {
	t.Helper()
	donation := models.Donation{
		DonorID:       donorID,
		Type:          donationType,
		Description:   description,
		Quantity:      quantity,
		PickupAddress: "12 Pickup Lane",
		Status:        status,
	}
	donation.CreatedAt = createdAt
	if err := db.Create(&donation).Error; err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func seedTransaction(t *testing.T, db *gorm.DB, donationID, ngoID uint, volunteerID *uint, status models.TransactionStatus, createdAt time.Time) models.Transaction {
	t.Helper()
	txn := models.Transaction{
		DonationID:  donationID,
		NgoID:       ngoID,
		VolunteerID: volunteerID,
		Status:      status,
	}
	txn.CreatedAt = createdAt
	if status == models.TransactionCompleted {
		done := createdAt.Add(time.Hour)
		txn.CompletedAt = &done
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return txn
}

// Package testutil provides in-memory databases and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tisbroker/insurance-api/models"
)

// NewDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A pooled second connection would see its own empty memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.EnterpriseEmployee{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductPackage{},
		&models.News{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ConsultationRequest{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateUser persists a user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	email := username + "@example.com"
	if role.IsInternal() {
		email = username + models.OrgEmailDomain
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

// CreateStaff persists an active staff user with a specialization.
func CreateStaff(t *testing.T, db *gorm.DB, username string, spec models.Specialization) *models.User {
	t.Helper()

	user := &models.User{
		Username:       username,
		Email:          username + models.OrgEmailDomain,
		PasswordHash:   "x",
		Role:           models.RoleStaff,
		Specialization: spec,
		IsActive:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create staff %q: %v", username, err)
	}
	return user
}

// CreatePackage persists a category, product and package chain, and
// returns the package.
func CreatePackage(t *testing.T, db *gorm.DB, name string, spec models.Specialization, price int64) *models.ProductPackage {
	t.Helper()

	category := &models.Category{
		Name:               name + " line",
		Slug:               name + "-line",
		SpecializationCode: spec,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	product := &models.Product{
		CategoryID:     category.ID,
		Name:           name,
		ProviderName:   fmt.Sprintf("%s Provider Co", name),
		TargetAudience: models.AudienceIndividual,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	pkg := &models.ProductPackage{
		ProductID:     product.ID,
		DurationLabel: "6 Tháng",
		Price:         decimal.NewFromInt(price),
		DurationDays:  180,
	}
	if err := db.Create(pkg).Error; err != nil {
		t.Fatalf("failed to create package: %v", err)
	}
	return pkg
}

// Package testutil gives tests an isolated, migrated SQLite database.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"talent-hub/auth"
	"talent-hub/database"
	"talent-hub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory database for t and migrates it.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a talent account with password "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	u := models.User{Username: username, Email: username + "@example.com", Password: hash, Role: models.RoleTalent}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// CreateCompany inserts a company with password "password123".
func CreateCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	email := strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@example.com"
	c := models.Company{Name: name, Email: email, Password: hash}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// CreateBounty inserts an OPEN bounty due in a week.
func CreateBounty(t *testing.T, db *gorm.DB, companyID uint, title string, xp, money int64) models.Bounty {
	t.Helper()
	b := models.Bounty{
		Title:       title,
		CompanyID:   companyID,
		Deadline:    time.Now().Add(7 * 24 * time.Hour),
		RewardXP:    xp,
		RewardMoney: money,
		Status:      models.BountyOpen,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// CreateEvent inserts an event with the given quota.
func CreateEvent(t *testing.T, db *gorm.DB, companyID uint, title string, quota int) models.Event {
	t.Helper()
	e := models.Event{
		Title:           title,
		Description:     title + " description",
		EventDate:       time.Now().Add(30 * 24 * time.Hour),
		CompanyID:       companyID,
		RegisteredQuota: quota,
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func UserPrincipal(u models.User) *auth.Principal {
	p := auth.UserPrincipal(u.ID, u.Username, u.Email, u.Role)
	return &p
}

func CompanyPrincipal(c models.Company) *auth.Principal {
	p := auth.CompanyPrincipal(c.ID, c.Name, c.Email)
	return &p
}

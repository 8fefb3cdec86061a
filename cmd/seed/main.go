// Command seed populates the user store with sample accounts: a batch of
// random users plus one admin (admin@example.com / admin123).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"user-dashboard/internal/config"
	"user-dashboard/internal/domain"
	"user-dashboard/internal/repository/sqlite"
)

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emma", "James", "Lisa",
	"Robert", "Mary", "William", "Jennifer", "Richard", "Patricia", "Charles",
	"Linda", "Thomas", "Elizabeth", "Christopher", "Barbara", "Daniel", "Susan",
	"Matthew", "Jessica", "Anthony", "Karen", "Mark", "Nancy", "Kevin", "Ruth",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Thomas", "Taylor",
	"Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris",
}

var domains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com",
	"icloud.com", "company.com", "business.org", "tech.io",
}

func main() {
	count := flag.Int("count", 50, "number of random users to create")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	created := 0
	for i := 0; i < *count; i++ {
		user := randomUser()
		if err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				continue
			}
			logger.Fatalf("create user %s: %v", user.Email, err)
		}
		created++
	}
	logger.Infof("created %d random users", created)

	admin := &domain.User{
		Name:         "Admin User",
		Email:        "admin@example.com",
		PasswordHash: mustHash("admin123"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	now := time.Now().UTC()
	admin.LastLogin = &now

	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			logger.Info("admin user already exists")
		} else {
			logger.Fatalf("create admin user: %v", err)
		}
	} else {
		logger.Infof("created admin user %s", admin.Email)
	}
}

func randomUser() *domain.User {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]
	email := fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(first), strings.ToLower(last), rand.Intn(1000),
		domains[rand.Intn(len(domains))])

	user := &domain.User{
		Name:         first + " " + last,
		Email:        email,
		PasswordHash: mustHash("password123"),
		Role:         domain.RoleUser,
		IsActive:     rand.Float64() > 0.1,
	}
	if rand.Float64() > 0.3 {
		at := time.Now().UTC().Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
		user.LastLogin = &at
	}
	return user
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

package main

import (
	"context"
	"errors"
	"log"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"
	"fintrack/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@fintrack.local"
	demoPassword = "demo-password"
)

// defaultCategories is the starter set created for the demo account.
var defaultCategories = []struct {
	Name string
	Type models.CategoryType
}{
	{"Salary", models.CategoryTypeIncome},
	{"Freelance", models.CategoryTypeIncome},
	{"Groceries", models.CategoryTypeExpense},
	{"Transport", models.CategoryTypeExpense},
	{"Utilities", models.CategoryTypeExpense},
	{"Entertainment", models.CategoryTypeExpense},
	{"Healthcare", models.CategoryTypeExpense},
	{"Other", models.CategoryTypeAny},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)

	appLogger.Info("Seeding demo account")

	user, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	created, err := seedDefaultCategories(ctx, categoryRepo, user)
	if err != nil {
		appLogger.Fatal("Failed to seed categories", zap.Error(err))
	}

	appLogger.Info("Seeding completed",
		zap.String("email", demoEmail),
		zap.Int("categories_created", created),
	)
}

func seedDemoUser(ctx context.Context, userRepo *repository.UserRepository) (*models.User, error) {
	existing, err := userRepo.GetByEmail(ctx, demoEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Name:      demoName,
		Email:     demoEmail,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func seedDefaultCategories(ctx context.Context, categoryRepo *repository.CategoryRepository, user *models.User) (int, error) {
	existing, err := categoryRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	have := make(map[string]bool, len(existing))
	for _, category := range existing {
		have[category.Name] = true
	}

	created := 0
	for _, def := range defaultCategories {
		if have[def.Name] {
			continue
		}
		now := time.Now()
		category := &models.Category{
			ID:        uuid.New(),
			UserID:    user.ID,
			Name:      def.Name,
			Type:      def.Type,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := categoryRepo.Create(ctx, category); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	appcatalog "github.com/jpashop/backend/internal/application/catalog"
	appmember "github.com/jpashop/backend/internal/application/member"
	apporder "github.com/jpashop/backend/internal/application/order"
	"github.com/jpashop/backend/internal/application/seed"
	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"github.com/jpashop/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		fixturePath string
		generate    bool
		randSeed    uint64
		members     int
		items       int
		orders      int
		auditor     string
	)

	flag.StringVar(&fixturePath, "file", "", "YAML fixture to load (default: built-in sample data)")
	flag.BoolVar(&generate, "generate", false, "Generate random data instead of loading a fixture")
	flag.Uint64Var(&randSeed, "seed", 0, "Random seed for -generate (0 picks one)")
	flag.IntVar(&members, "members", 10, "Members to generate")
	flag.IntVar(&items, "items", 20, "Items to generate")
	flag.IntVar(&orders, "orders", 30, "Orders to generate")
	flag.StringVar(&auditor, "auditor", "seed", "Auditor recorded in created_by")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	var fixture *seed.Fixture
	switch {
	case generate:
		fixture = seed.GenerateFixture(randSeed, members, items, orders)
	case fixturePath != "":
		fixture, err = seed.LoadFixture(fixturePath)
		if err != nil {
			log.Fatal("Failed to load fixture", zap.Error(err))
		}
	default:
		fixture = seed.DefaultFixture()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == "sqlite" || cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	seeder := seed.NewSeeder(
		appmember.NewMemberService(persistence.NewGormMemberRepository(db.DB), nil, nil),
		appcatalog.NewItemService(persistence.NewGormItemRepository(db.DB)),
		apporder.NewOrderService(persistence.NewGormTransactionScope(db.DB), persistence.NewGormOrderRepository(db.DB), nil),
		log,
	)

	ctx := logger.WithAuditor(context.Background(), auditor)
	if _, err := seeder.Apply(ctx, fixture); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
}

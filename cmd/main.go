package main

import (
	"context"
	"errors"
	"os"

	"ridehub/config"
	"ridehub/pkg/logger"
	"ridehub/pkg/models"
	"ridehub/service"
	"ridehub/storage"
	"ridehub/storage/localstore"
	"ridehub/storage/postgres"
	"ridehub/storage/redis"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx := context.Background()

	kv, err := openKV(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open collections store", logger.Error(err))
		os.Exit(1)
	}

	stg := storage.New(kv, log)
	defer stg.Close()

	svc := service.New(stg, log)

	// The rendering layer lives elsewhere; this binary seeds demo accounts
	// and walks one booking through its lifecycle so the store has something
	// to show.
	if err := runDemo(ctx, svc, log); err != nil {
		log.Error("demo run failed", logger.Error(err))
		os.Exit(1)
	}
}

func openKV(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.KV, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return postgres.New(ctx, cfg, log)
	case config.StoreDriverRedis:
		return redis.New(ctx, cfg, log)
	default:
		return localstore.New(cfg.StorePath, log)
	}
}

func runDemo(ctx context.Context, svc service.IServiceManager, log logger.ILogger) error {
	accounts := []service.SignUpRequest{
		{Name: "Asa Mensah", Phone: "0559876543", Email: "asa@example.com", Password: "demo", Role: models.RoleProvider, CarType: "sedan"},
		{Name: "Ama Owusu", Phone: "0551234567", Email: "ama@example.com", Password: "demo", Role: models.RoleCustomer},
	}
	for _, req := range accounts {
		if _, err := svc.User().SignUp(ctx, req); err != nil && !errors.Is(err, service.ErrEmailTaken) {
			return err
		}
	}

	booking, err := svc.Booking().Create(ctx, service.CreateBookingRequest{
		Name:        "Ama Owusu",
		Phone:       "0551234567",
		Email:       "ama@example.com",
		Vehicle:     "sedan",
		ServiceType: "wash",
		Pickup:      "Accra Mall",
		UserEmail:   "ama@example.com",
	})
	if err != nil {
		return err
	}

	if _, err := svc.Booking().Accept(ctx, booking.ID, "asa@example.com"); err != nil {
		return err
	}
	if _, err := svc.Booking().Complete(ctx, booking.ID, "asa@example.com"); err != nil {
		return err
	}

	stats, err := svc.Booking().ProviderStats(ctx, "asa@example.com")
	if err != nil {
		return err
	}
	log.Info("provider dashboard",
		logger.Int("total", stats.Total),
		logger.Int("pending", stats.Pending),
		logger.Int("assignedToYou", stats.AssignedToYou),
		logger.Int("completed", stats.Completed),
	)
	return nil
}

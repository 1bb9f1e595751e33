package cli

import (
	"context"
	"fmt"

	"github.com/martijn/userservice/internal/core/repository"
	"github.com/martijn/userservice/internal/core/service"
	"github.com/martijn/userservice/internal/infrastructure/kv"
	"github.com/martijn/userservice/internal/infrastructure/memory"
	"github.com/martijn/userservice/internal/infrastructure/rdb"
	"github.com/martijn/userservice/pkg/config"
	"go.uber.org/zap"
)

// Services holds all initialized services
type Services struct {
	UserRepo    repository.UserRepository
	UserService *service.UserService

	closers []func() error
}

// initServices opens the configured storage and builds the services on it
func initServices(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Services, error) {
	services := &Services{}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		services.UserRepo = memory.NewUserRepository()
	case config.DriverRedis:
		client, err := kv.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		services.UserRepo = kv.NewUserRepository(client, kv.DefaultKeyPrefix)
		services.closers = append(services.closers, client.Close)
	default:
		db, err := rdb.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		services.UserRepo = rdb.NewUserRepository(db)
		services.closers = append(services.closers, db.Close)
	}

	log.Debug("storage ready", zap.String("driver", cfg.Storage.Driver))
	services.UserService = service.NewUserService(services.UserRepo, log)

	return services, nil
}

// Close closes all resources
func (s *Services) Close() {
	for _, closeFn := range s.closers {
		closeFn()
	}
}

package backend

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	applog "budget/internal/log"
	"budget/internal/memory"
	"budget/internal/ports"
	"budget/internal/services"
	"budget/internal/storage"
)

var _ services.EventPublisher = (*amqp.Client)(nil)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger.With(applog.FieldComponent, applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var store ports.Store
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.Open(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
		f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	case MemoryBackend:
		store = memory.New()
		f.logger.InfoContext(ctx, "Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	svc := services.NewTransactionService(store, f.newPublisher(ctx, config))

	return &BackendResult{
		Service: svc,
		Cleanup: svc.Close,
	}, nil
}

// newPublisher connects to AMQP when configured. A broker that cannot be
// reached disables publishing instead of failing the backend.
func (f *DefaultFactory) newPublisher(ctx context.Context, config Config) services.EventPublisher {
	if config.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without sync", applog.FieldError, err)
		return nil
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}

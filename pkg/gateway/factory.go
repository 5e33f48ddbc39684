package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Constructor - функция-конструктор шлюза
// Возвращает новый экземпляр (еще не подключенный к БД)
type Constructor func() Gateway

// Factory - фабрика шлюзов БД
// Управляет регистрацией и созданием шлюзов различных типов
type Factory struct {
	registry map[string]Constructor
	mu       sync.RWMutex
}

// NewFactory создает новую фабрику шлюзов
func NewFactory() *Factory {
	return &Factory{
		registry: make(map[string]Constructor),
	}
}

// Register регистрирует конструктор шлюза для типа БД
// dbType должен быть одним из: "mariadb", "postgres", "sqlite"
func (f *Factory) Register(dbType string, constructor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registry[dbType] = constructor
}

// IsRegistered проверяет, зарегистрирован ли шлюз для данного типа БД
func (f *Factory) IsRegistered(dbType string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.registry[dbType]
	return ok
}

// RegisteredTypes возвращает список всех зарегистрированных типов БД
func (f *Factory) RegisteredTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.registry))
	for dbType := range f.registry {
		types = append(types, dbType)
	}
	return types
}

// Create создает и подключает шлюз по конфигурации
func (f *Factory) Create(ctx context.Context, cfg Config) (Gateway, error) {
	f.mu.RLock()
	constructor, ok := f.registry[cfg.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown database type: %s (available types: %v)",
			cfg.Type, f.RegisteredTypes())
	}

	gw := constructor()

	if err := gw.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}

	return gw, nil
}

// ========== Global Factory ==========

var globalFactory = NewFactory()

// Register регистрирует шлюз в глобальной фабрике
// Обычно вызывается в init() функциях адаптеров:
//
//	func init() {
//	    gateway.Register("mariadb", func() gateway.Gateway {
//	        return &Gateway{}
//	    })
//	}
func Register(dbType string, constructor Constructor) {
	globalFactory.Register(dbType, constructor)
}

// IsRegistered проверяет регистрацию в глобальной фабрике
func IsRegistered(dbType string) bool {
	return globalFactory.IsRegistered(dbType)
}

// RegisteredTypes возвращает типы из глобальной фабрики
func RegisteredTypes() []string {
	return globalFactory.RegisteredTypes()
}

// New создает и подключает шлюз через глобальную фабрику.
// Основной способ получения шлюза в приложении:
//
//	gw, err := gateway.New(ctx, gateway.Config{
//	    Type:     "mariadb",
//	    Host:     "localhost",
//	    User:     "app",
//	    Password: "secret",
//	    Database: "stocks_db",
//	})
//	if err != nil {
//	    log.Fatal().Err(err).Msg("connect failed")
//	}
//	defer gw.Close(ctx)
func New(ctx context.Context, cfg Config) (Gateway, error) {
	return globalFactory.Create(ctx, cfg)
}

package gateway

import (
	"fmt"
	"time"
)

// Config - конфигурация подключения шлюза к БД.
// Учетные данные передаются явно - шлюз ничего не запрашивает
// интерактивно и не хранит глобально.
type Config struct {
	// Type - тип СУБД: "mariadb", "postgres", "sqlite"
	Type string

	// Host - адрес сервера БД (не используется для SQLite)
	Host string

	// Port - порт сервера БД (0 = порт по умолчанию для типа)
	Port int

	// User - имя пользователя
	User string

	// Password - пароль
	Password string

	// Database - имя базы данных; для SQLite - путь к файлу
	// (":memory:" для БД в памяти)
	Database string

	// DSN - готовая строка подключения; если задана, остальные
	// поля подключения игнорируются
	DSN string

	// Timeout - таймаут установки соединения
	Timeout time.Duration

	// MaxConns - максимальное количество открытых соединений (0 = без лимита)
	MaxConns int
}

// DefaultPorts - порты по умолчанию для сетевых СУБД
var DefaultPorts = map[string]int{
	"mariadb":  3306,
	"postgres": 5432,
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("database type is required")
	}
	if c.DSN != "" {
		return nil
	}
	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Type != "sqlite" && c.Host == "" {
		return fmt.Errorf("host is required for %s", c.Type)
	}
	return nil
}

// Addr возвращает адрес host:port с подстановкой порта по умолчанию
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPorts[c.Type]
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

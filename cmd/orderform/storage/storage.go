package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"orderform/cmd/orderform/config"
	"orderform/cmd/orderform/models"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
)

type StorageService interface {
	AddOrder(ctx context.Context, customerName string, amount decimal.Decimal) (models.Order, error)
	Ping(ctx context.Context) error
}

type StorageDB struct {
	DBConn *sql.DB
	now    func() time.Time
}

var (
	ErrOpenDBConnection = errors.New("error opening database connection")
	ErrConnecting       = errors.New("error connecting to database")
	ErrMigrations       = errors.New("error applying migrations")
	ErrAddOrder         = errors.New("error adding order")
)

//go:embed db/migrations/*.sql
var embedMigrations embed.FS

func UpDBMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrations, err)
	}

	if err := goose.Up(db, "db/migrations"); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrations, err)
	}

	return nil
}

func NewStorage(c *config.Config) (*StorageDB, error) {
	dbConn, err := sql.Open("pgx", c.DBConnection)
	if err != nil {
		return nil, ErrOpenDBConnection
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, ErrConnecting
	}

	if err := UpDBMigrations(dbConn); err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	return NewStorageDB(dbConn), nil
}

func NewStorageDB(db *sql.DB) *StorageDB {
	return &StorageDB{
		DBConn: db,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *StorageDB) Close() error {
	return s.DBConn.Close()
}

var insertNewOrder = "INSERT INTO orders (customer_name, amount, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING id, created_at"

// AddOrder inserts one row per call; identical orders get distinct ids.
func (s *StorageDB) AddOrder(ctx context.Context, customerName string, amount decimal.Decimal) (models.Order, error) {
	order := models.Order{
		CustomerName: customerName,
		Amount:       amount,
	}

	err := s.DBConn.QueryRowContext(ctx, insertNewOrder, customerName, amount, s.now()).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrAddOrder, err)
	}
	order.UpdatedAt = order.CreatedAt

	return order, nil
}

func (s *StorageDB) Ping(ctx context.Context) error {
	return s.DBConn.PingContext(ctx)
}

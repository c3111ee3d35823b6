// Package repo contains all database access logic for the travel log.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-log/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TravelRepo defines the persistence operations for Travels.
// The service layer depends on this interface, not the Postgres implementation.
type TravelRepo interface {
	// List returns every travel ordered by p. p must come from
	// domain.NewListParams; unknown values are treated as year/desc.
	List(ctx context.Context, p domain.ListParams) ([]domain.Travel, error)

	// ListWithCoordinates returns only travels with both latitude and longitude,
	// ordered by year descending then city ascending.
	ListWithCoordinates(ctx context.Context) ([]domain.Travel, error)

	// GetByID retrieves a single travel.
	// Returns domain.ErrNotFound if no travel with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Travel, error)

	// Create inserts a new travel and returns the persisted record with the
	// DB-generated id and created_at populated.
	Create(ctx context.Context, travel domain.Travel) (domain.Travel, error)

	// Update overwrites every mutable field of an existing travel, nil optional
	// fields included. Returns domain.ErrNotFound if the travel does not exist.
	Update(ctx context.Context, travel domain.Travel) (domain.Travel, error)

	// Delete removes a travel by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgTravelRepo is the Postgres implementation of TravelRepo.
type pgTravelRepo struct {
	db db
}

// NewTravelRepo constructs a TravelRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelRepo(db db) TravelRepo {
	return &pgTravelRepo{db: db}
}

const travelColumns = `id, city, country, year, description, latitude, longitude, created_at`

// orderClauses maps every accepted ordering to a fixed ORDER BY clause.
// Column names cannot be bound as query parameters, so the clause is looked
// up here and never built from request input.
var orderClauses = map[domain.ListParams]string{
	{Sort: domain.SortByYear, Order: domain.OrderAsc}:     "year ASC, id ASC",
	{Sort: domain.SortByYear, Order: domain.OrderDesc}:    "year DESC, id ASC",
	{Sort: domain.SortByCountry, Order: domain.OrderAsc}:  "country ASC, id ASC",
	{Sort: domain.SortByCountry, Order: domain.OrderDesc}: "country DESC, id ASC",
	{Sort: domain.SortByCity, Order: domain.OrderAsc}:     "city ASC, id ASC",
	{Sort: domain.SortByCity, Order: domain.OrderDesc}:    "city DESC, id ASC",
}

func orderClause(p domain.ListParams) string {
	if c, ok := orderClauses[p]; ok {
		return c
	}
	return orderClauses[domain.NewListParams("", "")]
}

// List returns all travels in the requested order.
func (r *pgTravelRepo) List(ctx context.Context, p domain.ListParams) ([]domain.Travel, error) {
	q := `SELECT ` + travelColumns + ` FROM travels ORDER BY ` + orderClause(p)

	travels, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelRepo.List: %w", err)
	}
	return travels, nil
}

// ListWithCoordinates returns the travels that can be shown on the map.
func (r *pgTravelRepo) ListWithCoordinates(ctx context.Context) ([]domain.Travel, error) {
	const q = `
		SELECT ` + travelColumns + `
		FROM travels
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY year DESC, city ASC, id ASC`

	travels, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelRepo.ListWithCoordinates: %w", err)
	}
	return travels, nil
}

// GetByID retrieves a travel by primary key.
func (r *pgTravelRepo) GetByID(ctx context.Context, id int64) (domain.Travel, error) {
	const q = `SELECT ` + travelColumns + ` FROM travels WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.GetByID: %w", err)
	}
	return result, nil
}

// Create inserts a new travel row and returns the full persisted record.
func (r *pgTravelRepo) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	const q = `
		INSERT INTO travels (city, country, year, description, latitude, longitude)
		VALUES (@city, @country, @year, @description, @latitude, @longitude)
		RETURNING ` + travelColumns

	row := r.db.QueryRow(ctx, q, travelArgs(travel))
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Create: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a travel and returns the updated record.
// Last write wins; there is no version check.
func (r *pgTravelRepo) Update(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	const q = `
		UPDATE travels
		SET city        = @city,
		    country     = @country,
		    year        = @year,
		    description = @description,
		    latitude    = @latitude,
		    longitude   = @longitude
		WHERE id = @id
		RETURNING ` + travelColumns

	args := travelArgs(travel)
	args["id"] = travel.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a travel by primary key.
func (r *pgTravelRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM travels WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TravelRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TravelRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTravelRepo) query(ctx context.Context, q string) ([]domain.Travel, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var travels []domain.Travel
	for rows.Next() {
		t, err := scanTravel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		travels = append(travels, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return travels, nil
}

// travelArgs binds the mutable columns. nil pointers become NULL.
func travelArgs(t domain.Travel) pgx.NamedArgs {
	return pgx.NamedArgs{
		"city":        t.City,
		"country":     t.Country,
		"year":        t.Year,
		"description": t.Description,
		"latitude":    t.Latitude,
		"longitude":   t.Longitude,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTravel to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTravel maps a single database row into a domain.Travel.
// It handles the nullable description and coordinate columns.
func scanTravel(s scanner) (domain.Travel, error) {
	var (
		t           domain.Travel
		year        int32
		description pgtype.Text
		lat, lon    pgtype.Float8
	)

	err := s.Scan(&t.ID, &t.City, &t.Country, &year, &description, &lat, &lon, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Travel{}, domain.ErrNotFound
		}
		return domain.Travel{}, err
	}

	t.Year = int(year)
	if description.Valid {
		d := description.String
		t.Description = &d
	}
	if lat.Valid && lon.Valid {
		la, lo := lat.Float64, lon.Float64
		t.Latitude = &la
		t.Longitude = &lo
	}

	return t, nil
}

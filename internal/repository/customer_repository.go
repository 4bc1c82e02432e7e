package repository

import (
	"context"
	"errors"

	"fieldsales-backend/internal/db"
	"fieldsales-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	DB *db.Postgres
}

const customerColumns = `id, name, manager, city, region, address, mobile, mobile2, landline,
	email, gamme, owner_email, location, blocked, created_at, updated_at`

func (r CustomerRepository) List(ctx context.Context, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r CustomerRepository) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r CustomerRepository) Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO customers (id, name, manager, city, region, address, mobile, mobile2, landline,
		                       email, gamme, owner_email, location, blocked, created_at, updated_at)
		VALUES (COALESCE($1, nextval('customers_id_seq')), $2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, manager=EXCLUDED.manager, city=EXCLUDED.city, region=EXCLUDED.region,
			address=EXCLUDED.address, mobile=EXCLUDED.mobile, mobile2=EXCLUDED.mobile2,
			landline=EXCLUDED.landline, email=EXCLUDED.email, gamme=EXCLUDED.gamme,
			owner_email=EXCLUDED.owner_email, location=EXCLUDED.location, blocked=EXCLUDED.blocked,
			updated_at=now(), deleted_at=NULL
		RETURNING `+customerColumns+`
	`, nullableID(c.ID), c.Name, c.Manager, c.City, c.Region, c.Address, c.Mobile, c.Mobile2,
		c.Landline, c.Email, string(c.Gamme), c.OwnerEmail, c.Location, c.Blocked)
	return scanCustomer(row)
}

// SetBlocked flips the blocked flag; classification picks it up on the
// next recompute.
func (r CustomerRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE customers SET blocked=$2, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL
	`, id, blocked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r CustomerRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE customers SET deleted_at = now() WHERE id=$1`, id)
	return err
}

func scanCustomer(row interface {
	Scan(dest ...any) error
}) (*domain.Customer, error) {
	var (
		c     domain.Customer
		gamme string
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.Manager, &c.City, &c.Region, &c.Address, &c.Mobile, &c.Mobile2,
		&c.Landline, &c.Email, &gamme, &c.OwnerEmail, &c.Location, &c.Blocked,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.Gamme = domain.Gamme(gamme)
	return &c, nil
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

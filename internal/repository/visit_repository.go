package repository

import (
	"context"
	"errors"
	"fmt"

	"fieldsales-backend/internal/db"
	"fieldsales-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type VisitRepository struct {
	DB *db.Postgres
}

type CreateVisitInput struct {
	CustomerID       *int64
	CustomerName     string
	City             string
	Gamme            domain.Gamme
	SalespersonEmail string
	Action           domain.VisitAction
	AppointmentDates string
	Note             string
	ContactChannel   string
	ContactSummary   string
	Price            float64
	Quantity         int
	PhotoRef         string
	DisplayDate      string
}

const visitColumns = `id, code, customer_id, customer_name, city, gamme, salesperson_email, action,
	appointment_dates, note, contact_channel, contact_summary, price, quantity, photo_ref,
	display_date, created_at, updated_at`

func (r VisitRepository) Create(ctx context.Context, in CreateVisitInput) (*domain.Visit, error) {
	code := fmt.Sprintf("VIS-%s", uuid.NewString()[:8])
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO visits
		(code, customer_id, customer_name, city, gamme, salesperson_email, action,
		 appointment_dates, note, contact_channel, contact_summary, price, quantity, photo_ref,
		 display_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15, now(), now())
		RETURNING `+visitColumns+`
	`, code, in.CustomerID, in.CustomerName, in.City, string(in.Gamme), in.SalespersonEmail,
		string(in.Action), in.AppointmentDates, in.Note, in.ContactChannel, in.ContactSummary,
		in.Price, in.Quantity, in.PhotoRef, in.DisplayDate)
	return scanVisit(row)
}

// Update rewrites an existing visit in place; visits are otherwise
// append-only.
func (r VisitRepository) Update(ctx context.Context, id int64, in CreateVisitInput) (*domain.Visit, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE visits SET
			customer_id=$2, customer_name=$3, city=$4, gamme=$5, salesperson_email=$6, action=$7,
			appointment_dates=$8, note=$9, contact_channel=$10, contact_summary=$11,
			price=$12, quantity=$13, photo_ref=$14, display_date=$15, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING `+visitColumns+`
	`, id, in.CustomerID, in.CustomerName, in.City, string(in.Gamme), in.SalespersonEmail,
		string(in.Action), in.AppointmentDates, in.Note, in.ContactChannel, in.ContactSummary,
		in.Price, in.Quantity, in.PhotoRef, in.DisplayDate)
	v, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r VisitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE visits SET deleted_at = now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll fetches the full visit collection for the in-memory snapshot,
// newest first, bounded by limit (the store applies no pagination
// protocol beyond this fixed upper row bound).
func (r VisitRepository) ListAll(ctx context.Context, limit int) ([]domain.Visit, error) {
	if limit <= 0 {
		limit = 5000
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+visitColumns+`
		FROM visits
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

func scanVisit(row interface {
	Scan(dest ...any) error
}) (*domain.Visit, error) {
	var (
		v         domain.Visit
		gamme     string
		action    string
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID, &v.Code, &v.CustomerID, &v.CustomerName, &v.City, &gamme, &v.SalespersonEmail, &action,
		&v.AppointmentDates, &v.Note, &v.ContactChannel, &v.ContactSummary, &v.Price, &v.Quantity,
		&v.PhotoRef, &v.DisplayDate, &createdAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	v.Gamme = domain.Gamme(gamme)
	v.Action = domain.VisitAction(action)
	if createdAt.Valid {
		t := createdAt.Time.UTC()
		v.CreatedAt = &t
	}
	return &v, nil
}

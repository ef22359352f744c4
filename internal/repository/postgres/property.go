package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, name, address, property_type, owner_id, COALESCE(description, ''), is_active,
	base_price, cleaning_fee, max_guests, min_stay_days, max_stay_days,
	monthly_rent, tenant_id, is_rented, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	p := &domain.Property{}
	var (
		basePrice, cleaningFee, monthlyRent  decimal.NullDecimal
		maxGuests, minStay, maxStay          sql.NullInt64
		tenantID                             uuid.NullUUID
	)
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Type, &p.OwnerID, &p.Description, &p.IsActive,
		&basePrice, &cleaningFee, &maxGuests, &minStay, &maxStay,
		&monthlyRent, &tenantID, &p.IsRented, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if basePrice.Valid {
		p.BasePrice = &basePrice.Decimal
	}
	if cleaningFee.Valid {
		p.CleaningFee = &cleaningFee.Decimal
	}
	if monthlyRent.Valid {
		p.MonthlyRent = &monthlyRent.Decimal
	}
	if maxGuests.Valid {
		v := int(maxGuests.Int64)
		p.MaxGuests = &v
	}
	if minStay.Valid {
		v := int(minStay.Int64)
		p.MinStayDays = &v
	}
	if maxStay.Valid {
		v := int(maxStay.Int64)
		p.MaxStayDays = &v
	}
	if tenantID.Valid {
		p.TenantID = &tenantID.UUID
	}
	return p, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	query := `INSERT INTO properties (id, name, address, property_type, owner_id, description, is_active,
	            base_price, cleaning_fee, max_guests, min_stay_days, max_stay_days,
	            monthly_rent, tenant_id, is_rented, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Address, p.Type, p.OwnerID, p.Description, p.IsActive,
		p.BasePrice, p.CleaningFee, p.MaxGuests, p.MinStayDays, p.MaxStayDays,
		p.MonthlyRent, p.TenantID, p.IsRented, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(r.db.QueryRowContext(ctx, query, id))
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	p.UpdatedAt = time.Now().UTC()
	query := `UPDATE properties SET name=$1, address=$2, property_type=$3, owner_id=$4, description=$5, is_active=$6,
	            base_price=$7, cleaning_fee=$8, max_guests=$9, min_stay_days=$10, max_stay_days=$11,
	            monthly_rent=$12, tenant_id=$13, is_rented=$14, updated_at=$15 WHERE id=$16`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Address, p.Type, p.OwnerID, p.Description, p.IsActive,
		p.BasePrice, p.CleaningFee, p.MaxGuests, p.MinStayDays, p.MaxStayDays,
		p.MonthlyRent, p.TenantID, p.IsRented, p.UpdatedAt, p.ID)
	return err
}

// Delete deactivates the property. Rows are kept so historical bookings and
// payments keep their references.
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE properties SET is_active=false, updated_at=$1 WHERE id=$2`, time.Now().UTC(), id)
	return err
}

func (r *propertyRepository) List(ctx context.Context, filter repository.PropertyFilter, page, pageSize int) ([]domain.Property, int, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argIdx)
		args = append(args, *filter.OwnerID)
		argIdx++
	}
	if filter.TenantID != nil {
		query += fmt.Sprintf(" AND tenant_id = $%d", argIdx)
		args = append(args, *filter.TenantID)
		argIdx++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND property_type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR address ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, *p)
	}
	return properties, count, rows.Err()
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM properties WHERE is_active`).Scan(&count)
	return count, err
}

package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore persists policies and children in PostgreSQL. Schema lives in
// schema.sql; the store assumes it is applied.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed policy store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const dateLayout = "2006-01-02"

func (s *PostgresStore) CreatePolicy(ctx context.Context, p Policy) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO policies (
			id, status, number, name, type, insurer_id, start_date, end_date,
			premium, premium_frequency, coverage_amount, deductible,
			holder_name, holder_afm, holder_address, holder_phone, holder_email,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, string(p.Status), p.Number, p.Name, p.Type, p.InsurerID,
		p.StartDate, p.EndDate,
		nullFloat(p.Premium), p.PremiumFrequency, nullFloat(p.CoverageAmount), nullFloat(p.Deductible),
		p.HolderName, p.HolderAFM, p.HolderAddress, p.HolderPhone, p.HolderEmail,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateCoverage(ctx context.Context, c Coverage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO coverages (id, policy_id, name, amount, description)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.PolicyID, c.Name, nullFloat(c.Amount), c.Description,
	)
	if err != nil {
		return fmt.Errorf("insert coverage: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateBeneficiary(ctx context.Context, b Beneficiary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO beneficiaries (id, policy_id, name, relationship, percentage)
		VALUES ($1,$2,$3,$4,$5)`,
		b.ID, b.PolicyID, b.Name, b.Relationship, nullFloat(b.Percentage),
	)
	if err != nil {
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateDriver(ctx context.Context, d Driver) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drivers (id, policy_id, name, license_number, birth_date)
		VALUES ($1,$2,$3,$4,$5)`,
		d.ID, d.PolicyID, d.Name, d.LicenseNumber, d.BirthDate,
	)
	if err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateVehicle(ctx context.Context, v Vehicle) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vehicles (id, policy_id, plate, make, model, year)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		v.ID, v.PolicyID, v.Plate, v.Make, v.Model, nullInt(v.Year),
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateProperty(ctx context.Context, p Property) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (id, policy_id, address, construction_year, square_meters)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.PolicyID, p.Address, nullInt(p.ConstructionYear), nullFloat(p.SquareMeters),
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPolicy(ctx context.Context, id uuid.UUID) (Aggregate, error) {
	p, err := s.scanPolicy(s.db.QueryRowContext(ctx, `
		SELECT id, status, number, name, type, insurer_id, start_date, end_date,
		       premium, premium_frequency, coverage_amount, deductible,
		       holder_name, holder_afm, holder_address, holder_phone, holder_email,
		       created_at
		FROM policies WHERE id = $1`, id))
	if err != nil {
		return Aggregate{}, err
	}

	agg := Aggregate{Policy: p}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, policy_id, name, amount, description FROM coverages WHERE policy_id = $1`, id)
	if err != nil {
		return Aggregate{}, fmt.Errorf("list coverages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Coverage
		var amount sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.PolicyID, &c.Name, &amount, &c.Description); err != nil {
			return Aggregate{}, fmt.Errorf("scan coverage: %w", err)
		}
		c.Amount = floatPtr(amount)
		agg.Coverages = append(agg.Coverages, c)
	}
	if err := rows.Err(); err != nil {
		return Aggregate{}, fmt.Errorf("iterate coverages: %w", err)
	}

	brows, err := s.db.QueryContext(ctx, `
		SELECT id, policy_id, name, relationship, percentage FROM beneficiaries WHERE policy_id = $1`, id)
	if err != nil {
		return Aggregate{}, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer brows.Close()
	for brows.Next() {
		var b Beneficiary
		var pct sql.NullFloat64
		if err := brows.Scan(&b.ID, &b.PolicyID, &b.Name, &b.Relationship, &pct); err != nil {
			return Aggregate{}, fmt.Errorf("scan beneficiary: %w", err)
		}
		b.Percentage = floatPtr(pct)
		agg.Beneficiaries = append(agg.Beneficiaries, b)
	}
	if err := brows.Err(); err != nil {
		return Aggregate{}, fmt.Errorf("iterate beneficiaries: %w", err)
	}

	drows, err := s.db.QueryContext(ctx, `
		SELECT id, policy_id, name, license_number, birth_date FROM drivers WHERE policy_id = $1`, id)
	if err != nil {
		return Aggregate{}, fmt.Errorf("list drivers: %w", err)
	}
	defer drows.Close()
	for drows.Next() {
		var d Driver
		if err := drows.Scan(&d.ID, &d.PolicyID, &d.Name, &d.LicenseNumber, &d.BirthDate); err != nil {
			return Aggregate{}, fmt.Errorf("scan driver: %w", err)
		}
		agg.Drivers = append(agg.Drivers, d)
	}
	if err := drows.Err(); err != nil {
		return Aggregate{}, fmt.Errorf("iterate drivers: %w", err)
	}

	var v Vehicle
	var year sql.NullInt64
	err = s.db.QueryRowContext(ctx, `
		SELECT id, policy_id, plate, make, model, year FROM vehicles WHERE policy_id = $1`, id).
		Scan(&v.ID, &v.PolicyID, &v.Plate, &v.Make, &v.Model, &year)
	switch {
	case err == nil:
		v.Year = intPtr(year)
		agg.Vehicle = &v
	case !errors.Is(err, sql.ErrNoRows):
		return Aggregate{}, fmt.Errorf("get vehicle: %w", err)
	}

	var pr Property
	var cyear sql.NullInt64
	var sqm sql.NullFloat64
	err = s.db.QueryRowContext(ctx, `
		SELECT id, policy_id, address, construction_year, square_meters FROM properties WHERE policy_id = $1`, id).
		Scan(&pr.ID, &pr.PolicyID, &pr.Address, &cyear, &sqm)
	switch {
	case err == nil:
		pr.ConstructionYear = intPtr(cyear)
		pr.SquareMeters = floatPtr(sqm)
		agg.Property = &pr
	case !errors.Is(err, sql.ErrNoRows):
		return Aggregate{}, fmt.Errorf("get property: %w", err)
	}

	return agg, nil
}

func (s *PostgresStore) FindByInsurerAndNumber(ctx context.Context, insurerID, number string) (Policy, error) {
	return s.scanPolicy(s.db.QueryRowContext(ctx, `
		SELECT id, status, number, name, type, insurer_id, start_date, end_date,
		       premium, premium_frequency, coverage_amount, deductible,
		       holder_name, holder_afm, holder_address, holder_phone, holder_email,
		       created_at
		FROM policies WHERE insurer_id = $1 AND number = $2
		ORDER BY created_at DESC LIMIT 1`, insurerID, number))
}

func (s *PostgresStore) scanPolicy(row *sql.Row) (Policy, error) {
	var p Policy
	var status string
	var start, end time.Time
	var premium, coverage, deductible sql.NullFloat64
	err := row.Scan(
		&p.ID, &status, &p.Number, &p.Name, &p.Type, &p.InsurerID, &start, &end,
		&premium, &p.PremiumFrequency, &coverage, &deductible,
		&p.HolderName, &p.HolderAFM, &p.HolderAddress, &p.HolderPhone, &p.HolderEmail,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Policy{}, ErrNotFound
	}
	if err != nil {
		return Policy{}, fmt.Errorf("scan policy: %w", err)
	}
	p.Status = Status(status)
	p.StartDate = start.Format(dateLayout)
	p.EndDate = end.Format(dateLayout)
	p.Premium = floatPtr(premium)
	p.CoverageAmount = floatPtr(coverage)
	p.Deductible = floatPtr(deductible)
	return p, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

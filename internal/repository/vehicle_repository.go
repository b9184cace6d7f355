package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/driveloop/vehicle-rental/internal/model"
)

// VehicleRepo provides CRUD operations for the 'vehicles' table.
// Listing queries LEFT JOIN the reviews table so every returned
// vehicle carries its average rating when one exists.  The Features
// column is a JSON array serialized with encoding/json.
type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

const vehicleColumns = `v.id, v.owner_id, v.name, v.brand, v.model, v.year, v.category,
       v.description, v.location, v.features,
       v.price_day_cents, v.price_week_cents, v.price_month_cents,
       v.available, AVG(rv.rating) AS rating, v.created_at, v.updated_at`

// Create inserts a vehicle and populates the generated ID on the
// provided struct.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	features, err := json.Marshal(v.Features)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO vehicles
		   (owner_id, name, brand, model, year, category, description, location, features,
		    price_day_cents, price_week_cents, price_month_cents, available)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		v.OwnerID, v.Name, v.Brand, v.Model, v.Year, v.Category, v.Description, v.Location,
		string(features), v.PriceDayCents, v.PriceWeekCents, v.PriceMonthCents, v.Available)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// ListFilter narrows vehicle listings.  Category and Location are
// exact-ish SQL filters; free-text search runs in the search package
// over the returned slice.  OnlyAvailable restricts to listings whose
// owner has the availability flag on.
type ListFilter struct {
	Category      string
	Location      string
	OnlyAvailable bool
}

// List returns vehicles matching the filter ordered by creation time
// descending (newest listings first).
func (r *VehicleRepo) List(ctx context.Context, f ListFilter) ([]model.Vehicle, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.OnlyAvailable {
		where = append(where, "v.available = 1")
	}
	if f.Category != "" {
		where = append(where, "LOWER(v.category) = ?")
		args = append(args, strings.ToLower(f.Category))
	}
	if f.Location != "" {
		where = append(where, "LOWER(v.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
	}
	q := `SELECT ` + vehicleColumns + `
	      FROM vehicles v
	      LEFT JOIN reviews rv ON rv.vehicle_id = v.id
	      WHERE ` + strings.Join(where, " AND ") + `
	      GROUP BY v.id
	      ORDER BY v.created_at DESC`
	return r.queryVehicles(ctx, q, args...)
}

// ListByOwner returns every vehicle listed by the given owner.
func (r *VehicleRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + `
	      FROM vehicles v
	      LEFT JOIN reviews rv ON rv.vehicle_id = v.id
	      WHERE v.owner_id = ?
	      GROUP BY v.id
	      ORDER BY v.created_at DESC`
	return r.queryVehicles(ctx, q, ownerID)
}

// GetByID returns a single vehicle with its average rating.  It
// returns sql.ErrNoRows when the vehicle does not exist.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + `
	      FROM vehicles v
	      LEFT JOIN reviews rv ON rv.vehicle_id = v.id
	      WHERE v.id = ?
	      GROUP BY v.id`
	list, err := r.queryVehicles(ctx, q, id)
	if err != nil {
		return model.Vehicle{}, err
	}
	if len(list) == 0 {
		return model.Vehicle{}, sql.ErrNoRows
	}
	return list[0], nil
}

// SetAvailability flips the availability flag.  It verifies ownership
// first and returns ErrForbidden when the vehicle belongs to someone
// else, sql.ErrNoRows when it does not exist.
func (r *VehicleRepo) SetAvailability(ctx context.Context, id, ownerID uint64, available bool) error {
	var actualOwner uint64
	err := r.DB.QueryRowContext(ctx, "SELECT owner_id FROM vehicles WHERE id=?", id).Scan(&actualOwner)
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE vehicles SET available=? WHERE id=?", available, id)
	return err
}

// Delete removes a vehicle after checking ownership and dependent
// state.  A vehicle with pending or confirmed bookings cannot be
// deleted; that returns ErrConflict.  Finished bookings (cancelled,
// completed) do not block deletion and are removed with the listing.
func (r *VehicleRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var actualOwner uint64
	if err := tx.QueryRowContext(ctx, "SELECT owner_id FROM vehicles WHERE id=?", id).Scan(&actualOwner); err != nil {
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}

	var active int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE vehicle_id=? AND status IN ('pending','confirmed')",
		id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE vehicle_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE vehicle_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM vehicles WHERE id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// RatingsByOwner returns the average rating of each of the owner's
// vehicles that has at least one review.  Unreviewed vehicles are
// absent from the result so they do not drag the dashboard average.
func (r *VehicleRepo) RatingsByOwner(ctx context.Context, ownerID uint64) ([]float64, error) {
	const q = `SELECT AVG(rv.rating)
	           FROM vehicles v
	           JOIN reviews rv ON rv.vehicle_id = v.id
	           WHERE v.owner_id = ?
	           GROUP BY v.id`
	rows, err := r.DB.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []float64
	for rows.Next() {
		var avg float64
		if err := rows.Scan(&avg); err != nil {
			return nil, err
		}
		out = append(out, avg)
	}
	return out, rows.Err()
}

func (r *VehicleRepo) queryVehicles(ctx context.Context, q string, args ...any) ([]model.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Vehicle, 0)
	for rows.Next() {
		var (
			v        model.Vehicle
			features sql.NullString
			week     sql.NullInt64
			month    sql.NullInt64
			rating   sql.NullFloat64
		)
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Name, &v.Brand, &v.Model, &v.Year, &v.Category,
			&v.Description, &v.Location, &features,
			&v.PriceDayCents, &week, &month,
			&v.Available, &rating, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if features.Valid && features.String != "" {
			// tolerate malformed rows; a listing without parseable
			// features is still a listing
			_ = json.Unmarshal([]byte(features.String), &v.Features)
		}
		if week.Valid {
			w := week.Int64
			v.PriceWeekCents = &w
		}
		if month.Valid {
			m := month.Int64
			v.PriceMonthCents = &m
		}
		if rating.Valid {
			rt := rating.Float64
			v.Rating = &rt
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

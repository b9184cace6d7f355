package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/driveloop/vehicle-rental/internal/model"
	"github.com/driveloop/vehicle-rental/internal/pricing"
)

// BookingRepo provides CRUD operations for the 'bookings' table.
// Multi-step writes (create, status changes) run inside transactions
// owned by the caller; the *Tx methods never commit or roll back.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// BookingRow is a booking joined with display fields from the vehicle
// and renter for list responses.  It embeds model.Booking, so the
// projection helpers in the booking package apply to it directly.
type BookingRow struct {
	model.Booking
	VehicleName     string
	VehicleLocation string
	RenterName      string
	OwnerID         uint64
}

// VehicleForBookingTx loads the pricing-relevant columns of a vehicle
// inside a transaction, locking the row so a concurrent availability
// toggle or delete cannot race the insert.  It returns sql.ErrNoRows
// when the vehicle does not exist.
func (r *BookingRepo) VehicleForBookingTx(ctx context.Context, tx *sql.Tx, vehicleID uint64) (ownerID uint64, rates pricing.Rates, available bool, err error) {
	var (
		week  sql.NullInt64
		month sql.NullInt64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT owner_id, price_day_cents, price_week_cents, price_month_cents, available
		 FROM vehicles WHERE id=? FOR UPDATE`,
		vehicleID).Scan(&ownerID, &rates.DayCents, &week, &month, &available)
	if err != nil {
		return 0, pricing.Rates{}, false, err
	}
	if week.Valid {
		w := week.Int64
		rates.WeekCents = &w
	}
	if month.Valid {
		m := month.Int64
		rates.MonthCents = &m
	}
	return ownerID, rates, available, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided record.  Status and TotalAmountCents must already be set
// by the caller.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (reference, vehicle_id, renter_id, start_date, end_date, status, total_amount_cents)
		 VALUES (?,?,?,?,?,?,?)`,
		b.Reference, b.VehicleID, b.RenterID,
		b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
		b.Status, b.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetForUpdateTx loads a booking's status and parties inside a
// transaction, locking the row for a status change.  It returns
// sql.ErrNoRows when the booking does not exist.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (BookingRow, error) {
	const q = `SELECT b.id, b.reference, b.vehicle_id, b.renter_id, b.start_date, b.end_date,
	                  b.status, b.total_amount_cents, b.created_at, b.updated_at,
	                  v.name, v.location, v.owner_id
	           FROM bookings b
	           JOIN vehicles v ON v.id = b.vehicle_id
	           WHERE b.id = ?
	           FOR UPDATE`
	var row BookingRow
	err := tx.QueryRowContext(ctx, q, bookingID).Scan(
		&row.ID, &row.Reference, &row.VehicleID, &row.RenterID, &row.StartDate, &row.EndDate,
		&row.Status, &row.TotalAmountCents, &row.CreatedAt, &row.UpdatedAt,
		&row.VehicleName, &row.VehicleLocation, &row.OwnerID)
	if err != nil {
		return BookingRow{}, err
	}
	return row, nil
}

// UpdateStatusTx writes a new status for a booking within the
// caller's transaction.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?",
		status, bookingID)
	return err
}

// ListByRenter returns all bookings created by the given renter,
// newest first, with vehicle display fields attached.  Status
// filtering happens in the booking package so list order and filter
// semantics live in one place.
func (r *BookingRepo) ListByRenter(ctx context.Context, renterID uint64) ([]BookingRow, error) {
	const q = `SELECT b.id, b.reference, b.vehicle_id, b.renter_id, b.start_date, b.end_date,
	                  b.status, b.total_amount_cents, b.created_at, b.updated_at,
	                  v.name, v.location, v.owner_id,
	                  CONCAT(u.first_name, ' ', u.last_name)
	           FROM bookings b
	           JOIN vehicles v ON v.id = b.vehicle_id
	           JOIN users u    ON u.id = b.renter_id
	           WHERE b.renter_id = ?
	           ORDER BY b.created_at DESC`
	return r.queryRows(ctx, q, renterID)
}

// ListByOwner returns all bookings against the given owner's
// vehicles, newest first.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]BookingRow, error) {
	const q = `SELECT b.id, b.reference, b.vehicle_id, b.renter_id, b.start_date, b.end_date,
	                  b.status, b.total_amount_cents, b.created_at, b.updated_at,
	                  v.name, v.location, v.owner_id,
	                  CONCAT(u.first_name, ' ', u.last_name)
	           FROM bookings b
	           JOIN vehicles v ON v.id = b.vehicle_id
	           JOIN users u    ON u.id = b.renter_id
	           WHERE v.owner_id = ?
	           ORDER BY b.created_at DESC`
	return r.queryRows(ctx, q, ownerID)
}

func (r *BookingRepo) queryRows(ctx context.Context, q string, arg interface{}) ([]BookingRow, error) {
	rows, err := r.DB.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingRow, 0)
	for rows.Next() {
		var row BookingRow
		if err := rows.Scan(
			&row.ID, &row.Reference, &row.VehicleID, &row.RenterID, &row.StartDate, &row.EndDate,
			&row.Status, &row.TotalAmountCents, &row.CreatedAt, &row.UpdatedAt,
			&row.VehicleName, &row.VehicleLocation, &row.OwnerID, &row.RenterName,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// HasCompletedBooking reports whether the user finished at least one
// rental of the vehicle.  Reviews are gated on it.
func (r *BookingRepo) HasCompletedBooking(ctx context.Context, userID, vehicleID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE renter_id=? AND vehicle_id=? AND status='completed'",
		userID, vehicleID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ParseWireDate parses the yyyy-MM-dd date format used on the wire.
func ParseWireDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/driveloop/vehicle-rental/internal/model"
)

// ReviewRepo provides access to the 'reviews' table.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review and populates the generated ID.  A second
// review of the same vehicle by the same user trips the unique
// (vehicle_id, user_id) index and maps to ErrConflict.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (vehicle_id, user_id, rating, comment) VALUES (?,?,?,?)",
		rv.VehicleID, rv.UserID, rv.Rating, rv.Comment)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// ReviewRow is a review joined with the author's display name.
type ReviewRow struct {
	model.Review
	AuthorName string
}

// ListByVehicle returns all reviews of a vehicle, newest first.
func (r *ReviewRepo) ListByVehicle(ctx context.Context, vehicleID uint64) ([]ReviewRow, error) {
	const q = `SELECT rv.id, rv.vehicle_id, rv.user_id, rv.rating, rv.comment, rv.created_at,
	                  CONCAT(u.first_name, ' ', u.last_name)
	           FROM reviews rv
	           JOIN users u ON u.id = rv.user_id
	           WHERE rv.vehicle_id = ?
	           ORDER BY rv.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReviewRow, 0)
	for rows.Next() {
		var row ReviewRow
		if err := rows.Scan(&row.ID, &row.VehicleID, &row.UserID, &row.Rating,
			&row.Comment, &row.CreatedAt, &row.AuthorName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

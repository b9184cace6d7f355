package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/driveloop/vehicle-rental/internal/model"
	"github.com/driveloop/vehicle-rental/internal/utils"
)

// UserRepo provides CRUD operations for the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  The password is hashed
// with bcrypt before it touches the database.
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, email, phone, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var phoneVal interface{}
	if p := strings.TrimSpace(phone); p != "" {
		phoneVal = p
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, phone, password_hash, role) VALUES (?,?,?,?,?,?)",
		firstName, lastName, email, phoneVal, hash, role)
	if err != nil {
		// MySQL duplicate-key error on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id,first_name,last_name,email,phone,password_hash,role,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,first_name,last_name,email,phone,password_hash,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id)
}

func (r *UserRepo) scanOne(ctx context.Context, q string, arg interface{}) (model.User, error) {
	var (
		u     model.User
		phone sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if phone.Valid {
		p := phone.String
		u.Phone = &p
	}
	return u, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// EnrollmentRepo reads event enrollment records.  Enrollments are
// written by the registration subsystem; booking only consults them to
// resolve a user's ticket.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo returns a new EnrollmentRepo bound to the given database.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// GetByUserID fetches the enrollment belonging to a user.  It returns
// ErrEnrollmentNotFound when the user never enrolled.
func (r *EnrollmentRepo) GetByUserID(ctx context.Context, userID uint64) (model.Enrollment, error) {
	const q = `SELECT id, user_id, name, cpf, phone, created_at, updated_at
	           FROM enrollments WHERE user_id = ? LIMIT 1`
	var e model.Enrollment
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&e.ID, &e.UserID, &e.Name, &e.CPF, &e.Phone, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Enrollment{}, ErrEnrollmentNotFound
	}
	if err != nil {
		return model.Enrollment{}, err
	}
	return e, nil
}

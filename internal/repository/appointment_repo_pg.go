package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vertexcare/clinicbook/internal/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	List(ctx context.Context) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type PGAppointmentRepository struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) AppointmentRepository {
	return &PGAppointmentRepository{db: db}
}

// Create assigns the identifier and store-managed fields, then persists.
// Status is always forced to Pending regardless of input.
func (r *PGAppointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	appointment.ID = uuid.NewString()
	appointment.Status = domain.AppointmentStatusPending

	return r.db.QueryRow(ctx, `INSERT INTO appointments
		(id, full_name, mobile_number, email_address, department, doctor_name, reason_for_visit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		appointment.ID, appointment.FullName, appointment.MobileNumber, appointment.EmailAddress,
		appointment.Department, appointment.DoctorName, appointment.ReasonForVisit, appointment.Status).
		Scan(&appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *PGAppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, full_name, mobile_number, email_address, department, doctor_name, reason_for_visit, status, created_at, updated_at
		FROM appointments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.FullName, &a.MobileNumber, &a.EmailAddress, &a.Department, &a.DoctorName, &a.ReasonForVisit, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *PGAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	row := r.db.QueryRow(ctx, `UPDATE appointments SET status=$1, updated_at=now() WHERE id=$2
		RETURNING id, full_name, mobile_number, email_address, department, doctor_name, reason_for_visit, status, created_at, updated_at`, status, id)
	var a domain.Appointment
	if err := row.Scan(&a.ID, &a.FullName, &a.MobileNumber, &a.EmailAddress, &a.Department, &a.DoctorName, &a.ReasonForVisit, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAppointmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AppointmentRepository = (*PGAppointmentRepository)(nil)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medibook/internal/booking/models"
)

// PostgresStore persists appointments in PostgreSQL. Pure I/O; lifecycle
// rules live in the service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the appointments table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS appointments (
			id               TEXT PRIMARY KEY,
			patient_id       TEXT NOT NULL,
			doctor_id        TEXT NOT NULL,
			appointment_date TEXT NOT NULL,
			start_time       TEXT NOT NULL,
			end_time         TEXT NOT NULL,
			type             TEXT NOT NULL,
			mode             TEXT NOT NULL DEFAULT '',
			priority         TEXT NOT NULL DEFAULT '',
			chief_complaint  TEXT NOT NULL,
			status           TEXT NOT NULL,
			rating           INT,
			feedback         TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS appointments_patient_idx ON appointments (patient_id);
		CREATE INDEX IF NOT EXISTS appointments_doctor_idx ON appointments (doctor_id);
	`)
	if err != nil {
		return fmt.Errorf("ensure appointments schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, appt models.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, start_time,
			end_time, type, mode, priority, chief_complaint, status, rating, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, appt.ID, appt.PatientID, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime,
		string(appt.Type), string(appt.Mode), string(appt.Priority), appt.ChiefComplaint,
		string(appt.Status), appt.Rating, appt.Feedback, appt.CreatedAt)
	if err != nil {
		return fmt.Errorf("save appointment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, appt models.Appointment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET status = $2, rating = $3, feedback = $4
		WHERE id = $1
	`, appt.ID, string(appt.Status), appt.Rating, appt.Feedback)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectAppointment = `
	SELECT id, patient_id, doctor_id, appointment_date, start_time, end_time,
		type, mode, priority, chief_complaint, status, rating, feedback, created_at
	FROM appointments
`

func (s *PostgresStore) FindByID(ctx context.Context, id string) (models.Appointment, error) {
	row := s.db.QueryRowContext(ctx, selectAppointment+` WHERE id = $1`, id)
	appt, err := scanAppointment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, fmt.Errorf("find appointment: %w", err)
	}
	return appt, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter, page, limit int) ([]models.Appointment, int, error) {
	where := ` WHERE ($1 = '' OR patient_id = $1) AND ($2 = '' OR doctor_id = $2)`

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments`+where, filter.PatientID, filter.DoctorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		selectAppointment+where+` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		filter.PatientID, filter.DoctorID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		appt, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, total, nil
}

func scanAppointment(scan func(dest ...any) error) (models.Appointment, error) {
	var appt models.Appointment
	var typ, mode, priority, status string
	var rating sql.NullInt64
	err := scan(&appt.ID, &appt.PatientID, &appt.DoctorID, &appt.Date, &appt.StartTime,
		&appt.EndTime, &typ, &mode, &priority, &appt.ChiefComplaint, &status, &rating,
		&appt.Feedback, &appt.CreatedAt)
	if err != nil {
		return models.Appointment{}, err
	}
	appt.Type = models.AppointmentType(typ)
	appt.Mode = models.AppointmentMode(mode)
	appt.Priority = models.AppointmentPriority(priority)
	appt.Status = models.AppointmentStatus(status)
	if rating.Valid {
		v := int(rating.Int64)
		appt.Rating = &v
	}
	return appt, nil
}

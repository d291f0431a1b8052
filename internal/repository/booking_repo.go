package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stianfs/fitness-app/internal/models"
)

type CreateBookingInput struct {
	UserID    string
	ClassID   *string
	Type      string
	Date      time.Time
	StartTime string
	EndTime   string
	Status    string
	Notes     *string
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, class_id, type, date, start_time, end_time, status, notes, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }, booking *models.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ClassID,
		&booking.Type,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}

func (r *BookingRepository) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (id, user_id, class_id, type, date, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookingColumns + `
	`
	var booking models.Booking
	err := scanBooking(r.db.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		input.UserID,
		input.ClassID,
		input.Type,
		input.Date,
		input.StartTime,
		input.EndTime,
		input.Status,
		input.Notes,
	), &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	var booking models.Booking
	if err := scanBooking(r.db.QueryRow(ctx, query, id), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`
	var booking models.Booking
	if err := scanBooking(r.db.QueryRow(ctx, query, id), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY date DESC, start_time DESC, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns + `
	`
	var booking models.Booking
	if err := scanBooking(r.db.QueryRow(ctx, query, id, status), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

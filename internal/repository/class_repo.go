package repository

import (
	"context"

	"github.com/stianfs/fitness-app/internal/models"
)

type ClassRepository struct {
	db DBTX
}

func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, name, description, instructor_name, category, capacity, booked_count, date, start_time, end_time, location, image_url`

func scanClass(row interface{ Scan(dest ...any) error }, class *models.GroupClass) error {
	return row.Scan(
		&class.ID,
		&class.Name,
		&class.Description,
		&class.InstructorName,
		&class.Category,
		&class.Capacity,
		&class.BookedCount,
		&class.Date,
		&class.StartTime,
		&class.EndTime,
		&class.Location,
		&class.ImageURL,
	)
}

func (r *ClassRepository) List(ctx context.Context) ([]models.GroupClass, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		ORDER BY date, start_time, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]models.GroupClass, 0)
	for rows.Next() {
		var class models.GroupClass
		if err := scanClass(rows, &class); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id string) (*models.GroupClass, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE id = $1
	`
	var class models.GroupClass
	if err := scanClass(r.db.QueryRow(ctx, query, id), &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// GetByIDForUpdate locks the class row for the duration of the surrounding
// transaction. Used by the booking flow so capacity checks do not race.
func (r *ClassRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.GroupClass, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE id = $1
		FOR UPDATE
	`
	var class models.GroupClass
	if err := scanClass(r.db.QueryRow(ctx, query, id), &class); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) AdjustBookedCount(ctx context.Context, id string, delta int) error {
	query := `
		UPDATE classes
		SET booked_count = booked_count + $2
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, delta)
	return err
}

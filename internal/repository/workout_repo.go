package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stianfs/fitness-app/internal/models"
)

type CreateWorkoutInput struct {
	UserID   string
	Name     string
	Type     string
	Duration int
	Calories *int
	Notes    string
}

type UpdateWorkoutInput struct {
	Name     *string
	Type     *string
	Duration *int
	Calories *int
	Notes    *string
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create assigns the record id and forces user_id from the caller identity.
// created_at is set once here and never touched by updates.
func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (id, user_id, name, type, duration, calories, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, type, duration, calories, notes, created_at, updated_at
	`
	var workout models.Workout
	err := r.db.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		input.UserID,
		input.Name,
		input.Type,
		input.Duration,
		input.Calories,
		input.Notes,
	).Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Type,
		&workout.Duration,
		&workout.Calories,
		&workout.Notes,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id string) (*models.Workout, error) {
	query := `
		SELECT id, user_id, name, type, duration, calories, notes, created_at, updated_at
		FROM workouts
		WHERE id = $1
	`
	var workout models.Workout
	err := r.db.QueryRow(ctx, query, id).Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Type,
		&workout.Duration,
		&workout.Calories,
		&workout.Notes,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID string) ([]models.Workout, error) {
	query := `
		SELECT id, user_id, name, type, duration, calories, notes, created_at, updated_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.UserID,
			&workout.Name,
			&workout.Type,
			&workout.Duration,
			&workout.Calories,
			&workout.Notes,
			&workout.CreatedAt,
			&workout.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// UpdatePartial merges only the supplied fields and stamps updated_at.
func (r *WorkoutRepository) UpdatePartial(ctx context.Context, id string, input UpdateWorkoutInput) (*models.Workout, error) {
	query := `
		UPDATE workouts
		SET name = COALESCE($2, name),
			type = COALESCE($3, type),
			duration = COALESCE($4, duration),
			calories = COALESCE($5, calories),
			notes = COALESCE($6, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, name, type, duration, calories, notes, created_at, updated_at
	`
	var workout models.Workout
	err := r.db.QueryRow(
		ctx,
		query,
		id,
		input.Name,
		input.Type,
		input.Duration,
		input.Calories,
		input.Notes,
	).Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Type,
		&workout.Duration,
		&workout.Calories,
		&workout.Notes,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	return err
}

// Stats aggregates the caller's workouts: totals, per-type counts and
// ISO-week buckets, newest week first.
func (r *WorkoutRepository) Stats(ctx context.Context, userID string) (*models.WorkoutStats, error) {
	stats := &models.WorkoutStats{
		WorkoutsByType: make(map[string]int),
		WeeklyStats:    make([]models.WeeklyStat, 0),
	}

	totalsQuery := `
		SELECT COUNT(*),
			   COALESCE(SUM(duration), 0),
			   COALESCE(SUM(calories), 0),
			   COALESCE(AVG(duration), 0)
		FROM workouts
		WHERE user_id = $1
	`
	err := r.db.QueryRow(ctx, totalsQuery, userID).Scan(
		&stats.TotalWorkouts,
		&stats.TotalDuration,
		&stats.TotalCalories,
		&stats.AverageDuration,
	)
	if err != nil {
		return nil, err
	}

	typeQuery := `
		SELECT type, COUNT(*)
		FROM workouts
		WHERE user_id = $1
		GROUP BY type
	`
	rows, err := r.db.Query(ctx, typeQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var workoutType string
		var count int
		if err := rows.Scan(&workoutType, &count); err != nil {
			return nil, err
		}
		stats.WorkoutsByType[workoutType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	weeklyQuery := `
		SELECT DATE_TRUNC('week', created_at)::date, COUNT(*), COALESCE(SUM(duration), 0)
		FROM workouts
		WHERE user_id = $1
		GROUP BY 1
		ORDER BY 1 DESC
	`
	weekRows, err := r.db.Query(ctx, weeklyQuery, userID)
	if err != nil {
		return nil, err
	}
	defer weekRows.Close()
	for weekRows.Next() {
		var week time.Time
		var stat models.WeeklyStat
		if err := weekRows.Scan(&week, &stat.Count, &stat.Duration); err != nil {
			return nil, err
		}
		stat.Week = week.Format("2006-01-02")
		stats.WeeklyStats = append(stats.WeeklyStats, stat)
	}
	if err := weekRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

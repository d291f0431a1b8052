package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stianfs/fitness-app/internal/models"
	"github.com/stianfs/fitness-app/internal/repository"
)

type workoutStore interface {
	Create(ctx context.Context, input repository.CreateWorkoutInput) (*models.Workout, error)
	GetByID(ctx context.Context, id string) (*models.Workout, error)
	ListByUser(ctx context.Context, userID string) ([]models.Workout, error)
	UpdatePartial(ctx context.Context, id string, input repository.UpdateWorkoutInput) (*models.Workout, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, userID string) (*models.WorkoutStats, error)
}

type WorkoutHandler struct {
	workoutRepo workoutStore
}

func NewWorkoutHandler(workoutRepo *repository.WorkoutRepository) *WorkoutHandler {
	return &WorkoutHandler{workoutRepo: workoutRepo}
}

// createWorkoutRequest deliberately has no userId field: ownership always
// comes from the verified caller, never from the body.
type createWorkoutRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Duration int     `json:"duration"`
	Calories *int    `json:"calories"`
	Notes    *string `json:"notes"`
}

type updateWorkoutRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Duration *int    `json:"duration"`
	Calories *int    `json:"calories"`
	Notes    *string `json:"notes"`
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workouts, err := h.workoutRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) CreateWorkout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" || req.Duration <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Name, type, and duration are required"})
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}

	workout, err := h.workoutRepo.Create(c.Context(), repository.CreateWorkoutInput{
		UserID:   userID,
		Name:     req.Name,
		Type:     req.Type,
		Duration: req.Duration,
		Calories: req.Calories,
		Notes:    notes,
	})
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"workoutId": workout.ID,
	})
}

func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	workout, resp := h.loadOwnedWorkout(c)
	if workout == nil {
		return resp
	}

	return c.JSON(workout)
}

func (h *WorkoutHandler) UpdateWorkout(c *fiber.Ctx) error {
	workout, resp := h.loadOwnedWorkout(c)
	if workout == nil {
		return resp
	}

	var req updateWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must not be empty"})
	}
	if req.Type != nil && strings.TrimSpace(*req.Type) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must not be empty"})
	}
	if req.Duration != nil && *req.Duration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration must be greater than 0"})
	}
	if req.Calories != nil && *req.Calories <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "calories must be greater than 0"})
	}

	if _, err := h.workoutRepo.UpdatePartial(c.Context(), workout.ID, repository.UpdateWorkoutInput{
		Name:     req.Name,
		Type:     req.Type,
		Duration: req.Duration,
		Calories: req.Calories,
		Notes:    req.Notes,
	}); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	workout, resp := h.loadOwnedWorkout(c)
	if workout == nil {
		return resp
	}

	if err := h.workoutRepo.Delete(c.Context(), workout.ID); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *WorkoutHandler) GetStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	stats, err := h.workoutRepo.Stats(c.Context(), userID)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(stats)
}

// loadOwnedWorkout runs the shared fetch-then-authorize steps for the
// id-addressed operations: missing record is 404, a record owned by someone
// else is 403. The split is deliberate; existence is not hidden from
// non-owners, access is. A nil workout means the response has already been
// written and the returned error is the handler result.
func (h *WorkoutHandler) loadOwnedWorkout(c *fiber.Ctx) (*models.Workout, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID := strings.TrimSpace(c.Params("id"))
	if workoutID == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.workoutRepo.GetByID(c.Context(), workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return nil, internalError(c, err)
	}

	if workout.UserID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	return workout, nil
}

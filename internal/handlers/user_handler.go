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

type userProfileStore interface {
	UpdatePartial(ctx context.Context, id string, input repository.UpdateUserInput) (*models.User, error)
	UpdateMembership(ctx context.Context, id string, membershipType string) (*models.User, error)
}

type UserHandler struct {
	userRepo userProfileStore
}

func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type updateProfileRequest struct {
	DisplayName *string `json:"displayName"`
}

type updateMembershipRequest struct {
	MembershipType string `json:"membershipType"`
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "displayName must not be empty"})
	}

	user, err := h.userRepo.UpdatePartial(c.Context(), userID, repository.UpdateUserInput{
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

func (h *UserHandler) UpdateMembership(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.ValidMembershipType(req.MembershipType) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "membershipType must be basic, premium, or vip"})
	}

	user, err := h.userRepo.UpdateMembership(c.Context(), userID, req.MembershipType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// currentUserID returns the verified caller identity stored by the auth
// middleware.
func currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", errors.New("missing user id")
	}
	return userID, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stianfs/fitness-app/internal/models"
	"github.com/stianfs/fitness-app/internal/repository"
)

const (
	classListCacheKey = "classes:all"
	classListCacheTTL = time.Minute
)

type classStore interface {
	List(ctx context.Context) ([]models.GroupClass, error)
	GetByID(ctx context.Context, id string) (*models.GroupClass, error)
}

type ClassHandler struct {
	classRepo classStore
	rdb       *redis.Client
}

// NewClassHandler wires the public class catalog. rdb may be nil, in which
// case every list hits the database.
func NewClassHandler(classRepo *repository.ClassRepository, rdb *redis.Client) *ClassHandler {
	return &ClassHandler{classRepo: classRepo, rdb: rdb}
}

func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Context(), classListCacheKey).Bytes(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}
	}

	classes, err := h.classRepo.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	body, err := json.Marshal(fiber.Map{"classes": classes})
	if err != nil {
		return internalError(c, err)
	}

	if h.rdb != nil {
		_ = h.rdb.Set(c.Context(), classListCacheKey, body, classListCacheTTL).Err()
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	classID := strings.TrimSpace(c.Params("id"))
	if classID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	class, err := h.classRepo.GetByID(c.Context(), classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"class": class})
}

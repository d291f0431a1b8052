package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// internalError reports an unexpected store or infrastructure failure: the
// error is logged server-side and its message is surfaced in the 500 body so
// the failure stays diagnosable from the response alone.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

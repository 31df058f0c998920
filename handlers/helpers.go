package handlers

import (
	"errors"
	"io"
	"strconv"

	"class-quest-system/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fail maps a service error onto the HTTP surface. Unknown errors become
// 500s; the request always gets a structured payload, never a crash.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrStorageUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// deleteByID adapts a catalog delete method into a fiber handler.
func deleteByID(del func(uint) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		}
		if err := del(uint(id)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// readFormFile pulls one multipart file out of the request. A missing file
// is not an error here — callers decide whether it was required.
func readFormFile(c *fiber.Ctx, field string) (data []byte, filename, contentType string, err error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", "", err
	}
	return data, fh.Filename, fh.Header.Get("Content-Type"), nil
}

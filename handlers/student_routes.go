// handlers/student_routes.go
package handlers

import (
	"strconv"

	"class-quest-system/middleware"
	"class-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStudentRoutes(
	app *fiber.App,
	db *gorm.DB,
	onboardingService *services.OnboardingService,
	progressionService *services.ProgressionService,
	uploadService *services.UploadService,
	catalogService *services.CatalogService,
) {
	student := app.Group("/api/student", middleware.RequireUser(db))

	// First login rolls the one-time character/traits/items assignment.
	// Safe to call on every page load — repeats are read-only.
	student.Post("/first-login", func(c *fiber.Ctx) error {
		type Req struct {
			UserID uint `json:"user_id" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id is required",
			})
		}

		result, err := onboardingService.EnsureOnboarded(req.UserID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(result)
	})

	student.Get("/me/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid student id",
			})
		}

		me, level, err := progressionService.Progress(uint(id))
		if err != nil {
			return fail(c, err)
		}

		return c.JSON(fiber.Map{
			"id":         me.ID,
			"name":       me.Name,
			"class_id":   me.ClassID,
			"xp":         me.XP,
			"highest_xp": me.HighestXP,
			"level":      level,
			"character":  me.Character,
			"traits":     me.Traits,
			"items":      me.Items,
		})
	})

	student.Get("/uploads/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid student id",
			})
		}

		uploads, err := uploadService.ListUploads(uint(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(uploads)
	})

	student.Post("/upload", func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id is required",
			})
		}

		var missionID *uint
		if v := c.FormValue("mission_id"); v != "" {
			m, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid mission_id",
				})
			}
			mid := uint(m)
			missionID = &mid
		}

		data, filename, contentType, err := readFormFile(c, "file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "could not read uploaded file",
			})
		}

		upload, err := uploadService.SubmitProof(
			c.Context(), uint(userID), missionID, data, filename, contentType,
		)
		if err != nil {
			return fail(c, err)
		}

		return c.JSON(fiber.Map{
			"id":         upload.ID,
			"file_url":   upload.FileURL,
			"mission_id": upload.MissionID,
			"created_at": upload.CreatedAt,
		})
	})

	student.Get("/missions", func(c *fiber.Ctx) error {
		missions, err := catalogService.ListMissions()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(missions)
	})
}

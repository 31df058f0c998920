// handlers/admin_routes.go
package handlers

import (
	"strconv"

	"class-quest-system/middleware"
	"class-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAdminRoutes(
	app *fiber.App,
	db *gorm.DB,
	userService *services.UserService,
	catalogService *services.CatalogService,
	progressionService *services.ProgressionService,
	uploadService *services.UploadService,
) {
	admin := app.Group("/api/admin", middleware.RequireUser(db), middleware.RequireAdmin())

	// ---- classes & students ----

	admin.Post("/class/create", func(c *fiber.Ctx) error {
		type Req struct {
			Name string `json:"name" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		class, err := catalogService.CreateClass(req.Name)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(class)
	})

	admin.Get("/classes", func(c *fiber.Ctx) error {
		classes, err := catalogService.ListClasses()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(classes)
	})

	admin.Post("/student/create", func(c *fiber.Ctx) error {
		type Req struct {
			Name     string `json:"name" validate:"required"`
			Password string `json:"password" validate:"required"`
			ClassID  *uint  `json:"class_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and password are required"})
		}

		student, err := userService.CreateStudent(req.Name, req.Password, req.ClassID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(student)
	})

	admin.Get("/students", func(c *fiber.Ctx) error {
		var classID *uint
		if v := c.Query("class_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid class_id"})
			}
			cid := uint(id)
			classID = &cid
		}

		students, err := userService.ListStudents(classID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(students)
	})

	// ---- missions ----

	admin.Get("/missions", func(c *fiber.Ctx) error {
		missions, err := catalogService.ListMissions()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(missions)
	})

	admin.Post("/missions", func(c *fiber.Ctx) error {
		title := c.FormValue("title")
		xp, err := strconv.ParseInt(c.FormValue("xp"), 10, 64)
		if title == "" || err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title and a numeric xp are required",
			})
		}

		imageURL := storeImage(c, uploadService, "missions")
		mission, err := catalogService.CreateMission(
			title,
			c.FormValue("description"),
			xp,
			c.FormValue("requires_upload") == "true",
			imageURL,
		)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(mission)
	})

	admin.Delete("/missions/:id", deleteByID(catalogService.DeleteMission))

	// ---- bonus cards ----

	admin.Get("/cards", func(c *fiber.Ctx) error {
		cards, err := catalogService.ListBonusCards()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(cards)
	})

	admin.Post("/cards", func(c *fiber.Ctx) error {
		title := c.FormValue("title")
		if title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}
		var xpCost int64
		if v := c.FormValue("xp_cost"); v != "" {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "xp_cost must be numeric"})
			}
			xpCost = parsed
		}

		imageURL := storeImage(c, uploadService, "cards")
		card, err := catalogService.CreateBonusCard(title, c.FormValue("text"), xpCost, imageURL)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(card)
	})

	admin.Delete("/cards/:id", deleteByID(catalogService.DeleteBonusCard))

	// ---- characters ----

	admin.Get("/chars", func(c *fiber.Ctx) error {
		characters, err := catalogService.ListCharacters()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(characters)
	})

	admin.Post("/chars", func(c *fiber.Ctx) error {
		name := c.FormValue("name")
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		imageURL := storeImage(c, uploadService, "characters")
		character, err := catalogService.CreateCharacter(name, imageURL)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(character)
	})

	admin.Delete("/chars/:id", deleteByID(catalogService.DeleteCharacter))

	// ---- levels ----

	admin.Get("/levels", func(c *fiber.Ctx) error {
		levels, err := catalogService.ListLevels()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(levels)
	})

	admin.Post("/levels", func(c *fiber.Ctx) error {
		type Req struct {
			Name       string  `json:"name" validate:"required"`
			XPRequired *int64  `json:"xp_required" validate:"required"`
			Reward     *string `json:"reward"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and xp_required are required"})
		}

		level, err := catalogService.CreateLevel(req.Name, *req.XPRequired, req.Reward)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(level)
	})

	admin.Delete("/levels/:id", deleteByID(catalogService.DeleteLevel))

	// ---- XP grants ----

	admin.Post("/xp/student", func(c *fiber.Ctx) error {
		type Req struct {
			StudentID uint   `json:"student_id" validate:"required"`
			Amount    *int64 `json:"amount" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id and amount are required"})
		}

		updated, failures, err := progressionService.ApplyXP(
			services.XPTarget{StudentID: &req.StudentID}, *req.Amount, nil,
		)
		if err != nil {
			return fail(c, err)
		}
		return grantResponse(c, updated, failures)
	})

	admin.Post("/xp/class", func(c *fiber.Ctx) error {
		type Req struct {
			ClassID uint   `json:"class_id" validate:"required"`
			Amount  *int64 `json:"amount" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "class_id and amount are required"})
		}

		updated, failures, err := progressionService.ApplyXP(
			services.XPTarget{ClassID: &req.ClassID}, *req.Amount, nil,
		)
		if err != nil {
			return fail(c, err)
		}
		return grantResponse(c, updated, failures)
	})

	admin.Post("/xp/mission-students", func(c *fiber.Ctx) error {
		type Req struct {
			MissionID  uint   `json:"mission_id" validate:"required"`
			StudentIDs []uint `json:"student_ids" validate:"required,min=1"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mission_id and student_ids are required"})
		}

		updated, failures, err := progressionService.ApplyXP(
			services.XPTarget{StudentIDs: req.StudentIDs}, 0, &req.MissionID,
		)
		if err != nil {
			return fail(c, err)
		}
		return grantResponse(c, updated, failures)
	})

	admin.Post("/xp/mission-class", func(c *fiber.Ctx) error {
		type Req struct {
			MissionID uint `json:"mission_id" validate:"required"`
			ClassID   uint `json:"class_id" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mission_id and class_id are required"})
		}

		updated, failures, err := progressionService.ApplyXP(
			services.XPTarget{ClassID: &req.ClassID}, 0, &req.MissionID,
		)
		if err != nil {
			return fail(c, err)
		}
		return grantResponse(c, updated, failures)
	})
}

// storeImage saves an optional multipart catalog image. Any problem yields a
// nil URL — the catalog row is still created without an image.
func storeImage(c *fiber.Ctx, uploadService *services.UploadService, prefix string) *string {
	data, filename, contentType, err := readFormFile(c, "image")
	if err != nil || len(data) == 0 {
		return nil
	}
	return uploadService.StoreCatalogImage(c.Context(), data, filename, contentType, prefix)
}

func grantResponse(c *fiber.Ctx, updated []uint, failures []services.GrantFailure) error {
	if len(updated) == 0 && len(failures) > 0 {
		// Every target failed; the common case is a single unknown student.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"updated":  []uint{},
			"failures": failures,
		})
	}
	if updated == nil {
		updated = []uint{}
	}
	if failures == nil {
		failures = []services.GrantFailure{}
	}
	return c.JSON(fiber.Map{
		"updated":  updated,
		"failures": failures,
	})
}

package handlers

import (
	"talent-hub/auth"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
)

// SetupBoardRoutes wires the application-based bounty board under /board.
func SetupBoardRoutes(app fiber.Router, tokens *auth.Issuer, boardService *services.BoardService) {
	requireAuth := middleware.RequireAuth(tokens)
	board := app.Group("/board")

	board.Get("/bounties", func(c *fiber.Ctx) error {
		res, err := boardService.ListBounties(c.UserContext(), c.Query("status"))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Get("/bounties/search", func(c *fiber.Ctx) error {
		res, err := boardService.SearchBounties(c.UserContext(), c.Query("q"))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Get("/bounties/:id", func(c *fiber.Ctx) error {
		res, err := boardService.GetBounty(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Post("/bounties", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreateBoardBountyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := boardService.CreateBounty(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	board.Put("/bounties/:id", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.UpdateBoardBountyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := boardService.UpdateBounty(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id"), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Delete("/bounties/:id", requireAuth, func(c *fiber.Ctx) error {
		if err := boardService.DeleteBounty(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id")); err != nil {
			return err
		}
		return message(c, "Bounty deleted successfully")
	})

	board.Post("/applications", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreateApplicationRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := boardService.Apply(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	board.Get("/applications", requireAuth, func(c *fiber.Ctx) error {
		res, err := boardService.ListApplications(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Get("/applications/:id", requireAuth, func(c *fiber.Ctx) error {
		res, err := boardService.GetApplication(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id"))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Put("/applications/:id", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.UpdateApplicationRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := boardService.UpdateApplication(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id"), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	board.Delete("/applications/:id", requireAuth, func(c *fiber.Ctx) error {
		if err := boardService.DeleteApplication(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id")); err != nil {
			return err
		}
		return message(c, "Application deleted successfully")
	})

	board.Post("/uploads/cv", requireAuth, func(c *fiber.Ctx) error {
		fh, err := c.FormFile("cv")
		if err != nil {
			return services.Conflict("CV file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		url, err := boardService.UploadCV(c.UserContext(), middleware.PrincipalFrom(c), fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, fiber.Map{"url": url})
	})
}

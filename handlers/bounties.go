package handlers

import (
	"talent-hub/auth"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
)

func SetupBountyRoutes(app fiber.Router, tokens *auth.Issuer, bountyService *services.BountyService) {
	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	app.Get("/bounties", optionalAuth, func(c *fiber.Ctx) error {
		res, err := bountyService.List(c.UserContext(), middleware.PrincipalFrom(c), c.Query("status"))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/bounties/slug/:slug", optionalAuth, func(c *fiber.Ctx) error {
		res, err := bountyService.GetBySlug(c.UserContext(), middleware.PrincipalFrom(c), c.Params("slug"))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/bounties/:id", optionalAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := bountyService.Get(c.UserContext(), middleware.PrincipalFrom(c), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Post("/bounties", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreateBountyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := bountyService.Create(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Put("/bounties/:id", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.UpdateBountyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := bountyService.Update(c.UserContext(), middleware.PrincipalFrom(c), id, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Delete("/bounties/:id", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := bountyService.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
			return err
		}
		return message(c, "Bounty deleted successfully")
	})

	app.Post("/bounties/:id/claim", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := bountyService.Claim(c.UserContext(), middleware.PrincipalFrom(c), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Delete("/bounties/:id/unclaim", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := bountyService.Unclaim(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
			return err
		}
		return message(c, "Bounty unclaimed successfully")
	})

	app.Post("/bounties/:id/submit", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.SubmitBountyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := bountyService.Submit(c.UserContext(), middleware.PrincipalFrom(c), id, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Post("/bounties/:id/winner/:userId", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		userID, err := idParam(c, "userId")
		if err != nil {
			return err
		}
		res, err := bountyService.SelectWinner(c.UserContext(), middleware.PrincipalFrom(c), id, userID)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/bounties/:id/applicants", optionalAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := bountyService.Applicants(c.UserContext(), middleware.PrincipalFrom(c), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/my-bounties", requireAuth, func(c *fiber.Ctx) error {
		res, err := bountyService.MyBounties(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/company/my-bounties", optionalAuth, func(c *fiber.Ctx) error {
		res, err := bountyService.CompanyBounties(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})
}

package handlers

import (
	"talent-hub/auth"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
)

func SetupCompanyRoutes(app fiber.Router, tokens *auth.Issuer, companyService *services.CompanyService, eventService *services.EventService) {
	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	app.Post("/companies/register", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.RegisterCompanyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := companyService.Register(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Post("/companies/login", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.LoginRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := companyService.Login(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/companies", func(c *fiber.Ctx) error {
		res, err := companyService.List(c.UserContext())
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/companies/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := companyService.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Put("/companies/:id", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.UpdateCompanyRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := companyService.Update(c.UserContext(), middleware.PrincipalFrom(c), id, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Delete("/companies/:id", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := companyService.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
			return err
		}
		return message(c, "Company deleted successfully")
	})

	app.Get("/companies/:companyId/events", optionalAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "companyId")
		if err != nil {
			return err
		}
		res, err := eventService.ListByCompany(c.UserContext(), middleware.PrincipalFrom(c), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})
}

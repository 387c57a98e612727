package handlers

import (
	"talent-hub/auth"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app fiber.Router, tokens *auth.Issuer, eventService *services.EventService) {
	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	app.Get("/events", optionalAuth, func(c *fiber.Ctx) error {
		res, err := eventService.List(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Post("/events", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreateEventRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := eventService.Create(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Post("/events/register", requireAuth, func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.RegisterEventRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := eventService.Register(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Get("/events/:id", optionalAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := eventService.Get(c.UserContext(), middleware.PrincipalFrom(c), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Put("/events/:id", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.UpdateEventRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := eventService.Update(c.UserContext(), middleware.PrincipalFrom(c), id, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Delete("/events/:id", requireAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := eventService.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
			return err
		}
		return message(c, "Event deleted successfully")
	})

	app.Delete("/events/:eventId/users/:userId", requireAuth, func(c *fiber.Ctx) error {
		eventID, err := idParam(c, "eventId")
		if err != nil {
			return err
		}
		userID, err := idParam(c, "userId")
		if err != nil {
			return err
		}
		if err := eventService.Unregister(c.UserContext(), middleware.PrincipalFrom(c), eventID, userID); err != nil {
			return err
		}
		return message(c, "User unregistered from event successfully")
	})

	app.Get("/events/:id/registrants", optionalAuth, func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := eventService.Registrants(c.UserContext(), middleware.PrincipalFrom(c), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/company/my-events", optionalAuth, func(c *fiber.Ctx) error {
		res, err := eventService.CompanyEvents(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})
}

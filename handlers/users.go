package handlers

import (
	"talent-hub/auth"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
)

// currentUser returns the calling user or a 403 for companies.
func currentUser(c *fiber.Ctx) (*auth.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if !p.IsUser() {
		return nil, services.Forbidden("This action is only available to users")
	}
	return p, nil
}

func SetupUserRoutes(app fiber.Router, tokens *auth.Issuer, userService *services.UserService) {
	requireAuth := middleware.RequireAuth(tokens)

	app.Post("/register", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.RegisterUserRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := userService.Register(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Post("/login", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.LoginRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := userService.Login(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	profile := app.Group("/profile", requireAuth)

	profile.Get("/", func(c *fiber.Ctx) error {
		p, err := currentUser(c)
		if err != nil {
			return err
		}
		res, err := userService.GetProfile(c.UserContext(), p.ID)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	profile.Put("/", func(c *fiber.Ctx) error {
		p, err := currentUser(c)
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.UpdateProfileRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := userService.UpdateProfile(c.UserContext(), p.ID, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	profile.Delete("/", func(c *fiber.Ctx) error {
		p, err := currentUser(c)
		if err != nil {
			return err
		}
		if err := userService.DeleteUser(c.UserContext(), p.ID); err != nil {
			return err
		}
		return message(c, "Account deleted successfully")
	})

	profile.Get("/stats", func(c *fiber.Ctx) error {
		p, err := currentUser(c)
		if err != nil {
			return err
		}
		res, err := userService.GetProfileStats(c.UserContext(), p.ID)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	profile.Get("/posts", func(c *fiber.Ctx) error {
		p, err := currentUser(c)
		if err != nil {
			return err
		}
		res, err := userService.GetUserPosts(c.UserContext(), p.ID)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	profile.Get("/events", func(c *fiber.Ctx) error {
		p, err := currentUser(c)
		if err != nil {
			return err
		}
		res, err := userService.GetUserEvents(c.UserContext(), p.ID)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/users/search", func(c *fiber.Ctx) error {
		res, err := userService.SearchUsers(c.UserContext(), c.Query("q"), c.QueryInt("limit", 0))
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/users/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		user, err := userService.GetUser(c.UserContext(), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, user.Summary())
	})
}

package handlers

import (
	"talent-hub/auth"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
)

// SetupPostRoutes wires posts, comments and votes. Reads and writes are public
// except for image uploads, which need the post's author.
func SetupPostRoutes(app fiber.Router, tokens *auth.Issuer, postService *services.PostService, commentService *services.CommentService, voteService *services.VoteService) {
	app.Get("/posts", func(c *fiber.Ctx) error {
		res, err := postService.List(c.UserContext())
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Get("/posts/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := postService.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Post("/posts", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreatePostRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := postService.Create(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Put("/posts/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.UpdatePostRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := postService.Update(c.UserContext(), id, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Delete("/posts/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := postService.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return message(c, "Post deleted successfully")
	})

	app.Post("/posts/:id/image", middleware.RequireAuth(tokens), func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		fh, err := c.FormFile("image")
		if err != nil {
			return services.Conflict("Image file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := postService.AttachImage(c.UserContext(), middleware.PrincipalFrom(c), id, fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	listComments := func(c *fiber.Ctx, postID uint) error {
		res, err := commentService.ListByPost(c.UserContext(), postID)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	}

	app.Get("/posts/:postId/comments", func(c *fiber.Ctx) error {
		postID, err := idParam(c, "postId")
		if err != nil {
			return err
		}
		return listComments(c, postID)
	})

	app.Get("/comments", func(c *fiber.Ctx) error {
		postID, err := idQuery(c, "post_id")
		if err != nil {
			return err
		}
		return listComments(c, postID)
	})

	app.Get("/comments/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		res, err := commentService.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Post("/comments", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreateCommentRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := commentService.Create(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Put("/comments/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		req, err := validation.Parse[services.UpdateCommentRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := commentService.Update(c.UserContext(), id, req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusOK, res)
	})

	app.Delete("/comments/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := commentService.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return message(c, "Comment deleted successfully")
	})

	app.Post("/votes", func(c *fiber.Ctx) error {
		req, err := validation.Parse[services.CreateVoteRequest](c.Body())
		if err != nil {
			return err
		}
		res, err := voteService.Add(c.UserContext(), req)
		if err != nil {
			return err
		}
		return data(c, fiber.StatusCreated, res)
	})

	app.Delete("/votes/:id", func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := voteService.Remove(c.UserContext(), id); err != nil {
			return err
		}
		return message(c, "Vote removed successfully")
	})
}

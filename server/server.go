package server

import (
	"talent-hub/auth"
	"talent-hub/config"
	"talent-hub/handlers"
	"talent-hub/middleware"
	"talent-hub/services"
	"talent-hub/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UploadsPrefix is where LocalStore files are served from.
const UploadsPrefix = "/uploads"

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.Issuer
	Store  utils.Uploader
	Log    *zap.Logger
}

// New builds the fiber app with every route mounted.
func New(cfg config.Server, deps Deps) *fiber.App {
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}

	app := fiber.New(fiber.Config{
		AppName:               "talent-hub",
		BodyLimit:             bodyLimit * 1024 * 1024,
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          handlers.ErrorHandler(deps.Log),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(deps.Log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Origins(),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
		MaxAge:        86400,
	}))

	if local, ok := deps.Store.(*utils.LocalStore); ok {
		app.Static(UploadsPrefix, local.Dir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})

	users := services.NewUserService(deps.DB, deps.Tokens)
	companies := services.NewCompanyService(deps.DB, deps.Tokens)
	events := services.NewEventService(deps.DB)
	bounties := services.NewBountyService(deps.DB)

	handlers.SetupUserRoutes(app, deps.Tokens, users)
	handlers.SetupCompanyRoutes(app, deps.Tokens, companies, events)
	handlers.SetupPostRoutes(app, deps.Tokens,
		services.NewPostService(deps.DB, deps.Store),
		services.NewCommentService(deps.DB),
		services.NewVoteService(deps.DB),
	)
	handlers.SetupEventRoutes(app, deps.Tokens, events)
	handlers.SetupBountyRoutes(app, deps.Tokens, bounties)
	handlers.SetupBoardRoutes(app, deps.Tokens, services.NewBoardService(deps.DB, deps.Store))

	return app
}

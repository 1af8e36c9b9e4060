package api

import (
	docs "github.com/cinematik/backend/docs"
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

func RegisterSwagger(app *fiber.App) {
	// Host and scheme follow whatever the client actually hit, so the
	// "try it out" button works behind a proxy too.
	app.Use(func(c *fiber.Ctx) error {
		docs.SwaggerInfo.Host = c.Hostname()
		docs.SwaggerInfo.Schemes = []string{c.Protocol()}
		return c.Next()
	})

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}

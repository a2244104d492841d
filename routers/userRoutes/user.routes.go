package userRoutes

import (
	controllers "lms/controllers/userControllers"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires authentication, profile and user administration.
func SetupUserRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	group := app.Group("/api/users")

	group.Post("/register", validators.Register(), ctl.Register)
	group.Post("/login", validators.Login(), ctl.Login)
	group.Get("/google", ctl.GoogleLogin)
	group.Get("/google/callback", ctl.GoogleCallback)

	group.Post("/logout", auth, ctl.Logout)
	group.Get("/profile", auth, ctl.Profile)
	group.Post("/change-password", auth, validators.ChangePassword(), ctl.ChangePassword)

	group.Get("/", auth, middleware.RequireRoles(models.RoleAdmin), ctl.GetAllUsers)
	group.Delete("/:id", auth, middleware.RequireRoles(models.RoleAdmin), ctl.DeleteUser)
	group.Put("/:id/role", auth, middleware.RequireRoles(models.RoleAdmin), validators.UpdateRole(), ctl.UpdateUserRole)
}

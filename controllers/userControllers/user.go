package userControllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"lms/config"
	"lms/middleware"
	"lms/store"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Controller bundles the user endpoints with their dependencies.
type Controller struct {
	Cfg      *config.Config
	Users    *store.UserStore
	Tokens   *middleware.TokenService
	Sessions *session.Store
}

func New(cfg *config.Config, users *store.UserStore, tokens *middleware.TokenService, sessions *session.Store) *Controller {
	return &Controller{Cfg: cfg, Users: users, Tokens: tokens, Sessions: sessions}
}

func (ctl *Controller) tokenCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(ctl.Tokens.TTL),
		HTTPOnly: true,
		Secure:   ctl.Cfg.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// Register creates a password-based account and signs the user in.
func (ctl *Controller) Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*userValidator.RegisterRequest)

	user, err := ctl.Users.Create(reqData.Email, reqData.Password, reqData.Name, reqData.Role)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		if errors.Is(err, store.ErrValidation) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role!", nil)
		}
		return err
	}

	token, err := ctl.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		return err
	}
	c.Cookie(ctl.tokenCookie(token))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Login verifies credentials. All failure modes return the same message.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*userValidator.LoginRequest)

	user, err := ctl.Users.FindByEmail(reqData.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials", nil)
	}
	if user.PasswordHash == nil || !ctl.Users.VerifyPassword(reqData.Password, *user.PasswordHash) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials", nil)
	}
	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials", nil)
	}

	token, err := ctl.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		return err
	}
	if err := ctl.Users.TouchLastLogin(user.ID); err != nil {
		log.Printf("Error recording login time: %v", err)
	}
	c.Cookie(ctl.tokenCookie(token))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout clears the auth cookie and destroys the session. Tokens are
// stateless so a previously issued token stays verifiable until expiry.
func (ctl *Controller) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	if ctl.Sessions != nil {
		if sess, err := ctl.Sessions.Get(c); err == nil {
			_ = sess.Destroy()
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully.", nil)
}

// Profile returns the authenticated user.
func (ctl *Controller) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", user.Public())
}

// ChangePassword rotates the caller's password after verifying the
// current one.
func (ctl *Controller) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData := c.Locals("validatedPassword").(*userValidator.ChangePasswordRequest)

	if user.PasswordHash == nil || !ctl.Users.VerifyPassword(reqData.CurrentPassword, *user.PasswordHash) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}
	if err := ctl.Users.UpdatePassword(user.ID, reqData.NewPassword); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}

// GetAllUsers lists users, admin only.
func (ctl *Controller) GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := ctl.Users.FindAll(limit, offset)
	if err != nil {
		return err
	}
	list := make([]interface{}, 0, len(users))
	for i := range users {
		list = append(list, users[i].Public())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", list)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (ctl *Controller) DeleteUser(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}
	if uint(id) == caller.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}
	if err := ctl.Users.Delete(uint(id)); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}

// UpdateUserRole changes another user's role. Admins cannot change their
// own role.
func (ctl *Controller) UpdateUserRole(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	reqData := c.Locals("validatedRole").(*userValidator.UpdateRoleRequest)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}
	if uint(id) == caller.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot change your own role!", nil)
	}

	user, err := ctl.Users.Update(uint(id), map[string]interface{}{"role": reqData.Role})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully.", user.Public())
}

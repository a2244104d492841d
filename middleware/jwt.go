package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lms/models"
	"lms/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v4"
)

// Token verification errors. The gate maps these to distinct 401 messages.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenService issues and verifies HS256 bearer tokens. Tokens are
// stateless: there is no server-side revocation.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenService(secret string, ttlHours int) *TokenService {
	return &TokenService{Secret: []byte(secret), TTL: time.Duration(ttlHours) * time.Hour}
}

// Issue signs a token carrying the user id.
func (t *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iat": now.Unix(),
		"exp": now.Add(t.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// Verify parses a token and returns the embedded user id. Expired tokens
// map to ErrTokenExpired; anything else wrong maps to ErrTokenInvalid.
func (t *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrTokenInvalid
	}
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID == 0 {
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

// Authenticate builds the authentication gate. The token comes from the
// Authorization header first, the "token" cookie second. On success the
// user record and id land in c.Locals and the session is marked.
func Authenticate(tokens *TokenService, users *store.UserStore, sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[len("Bearer "):]
		}
		if tokenString == "" {
			tokenString = c.Cookies("token")
		}
		if tokenString == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Access token is required", nil)
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "Token has expired", nil)
			}
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token", nil)
		}

		user, err := users.FindByID(userID)
		if err != nil || !user.IsActive {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token", nil)
		}

		c.Locals("userId", user.ID)
		c.Locals("user", user)

		if sessions != nil {
			if sess, err := sessions.Get(c); err == nil {
				sess.Set("userId", user.ID)
				sess.Set("authenticated", true)
				_ = sess.Save()
			}
		}
		return c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the request context.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

package userControllers

import (
	"context"
	"errors"
	"log"
	"time"

	"lms/store"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (ctl *Controller) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     ctl.Cfg.GoogleClientID,
		ClientSecret: ctl.Cfg.GoogleClientSecret,
		RedirectURL:  ctl.Cfg.GoogleCallbackURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleLogin starts the OAuth handshake: a random state value goes into a
// short-lived cookie and the user is sent to the consent screen.
func (ctl *Controller) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   ctl.Cfg.Production(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	url := ctl.oauthConfig().AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// GoogleCallback finishes the handshake: state check, code exchange,
// userinfo fetch, local find-or-create and a token cookie. Provider error
// details are logged, never forwarded to the browser.
func (ctl *Controller) GoogleCallback(c *fiber.Ctx) error {
	if errParam := c.Query("error"); errParam != "" {
		log.Printf("Google OAuth provider error: %s", errParam)
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=oauth_failed", fiber.StatusTemporaryRedirect)
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies("oauth_state") {
		log.Printf("Google OAuth state mismatch")
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=oauth_failed", fiber.StatusTemporaryRedirect)
	}
	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: "", Expires: time.Now().Add(-time.Hour), HTTPOnly: true})

	code := c.Query("code")
	if code == "" {
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=oauth_failed", fiber.StatusTemporaryRedirect)
	}

	oauthToken, err := ctl.oauthConfig().Exchange(context.Background(), code)
	if err != nil {
		log.Printf("Google OAuth code exchange failed: %v", err)
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=oauth_failed", fiber.StatusTemporaryRedirect)
	}

	info, err := fetchGoogleUserInfo(oauthToken.AccessToken)
	if err != nil {
		log.Printf("Google userinfo fetch failed: %v", err)
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=oauth_failed", fiber.StatusTemporaryRedirect)
	}

	user, err := ctl.Users.FindByOAuth(info.ID, "google")
	if errors.Is(err, store.ErrNotFound) {
		user, err = ctl.Users.CreateOAuth(store.OAuthProfile{
			Subject:  info.ID,
			Provider: "google",
			Email:    info.Email,
			Name:     info.Name,
			Avatar:   info.Picture,
		})
	}
	if err != nil {
		log.Printf("Google OAuth local account error: %v", err)
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=processing_error", fiber.StatusTemporaryRedirect)
	}
	if !user.IsActive {
		log.Printf("Google OAuth login for deactivated user %d", user.ID)
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=processing_error", fiber.StatusTemporaryRedirect)
	}

	token, err := ctl.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		return c.Redirect(ctl.Cfg.FrontendURL+"?error=processing_error", fiber.StatusTemporaryRedirect)
	}
	if err := ctl.Users.TouchLastLogin(user.ID); err != nil {
		log.Printf("Error recording login time: %v", err)
	}
	c.Cookie(ctl.tokenCookie(token))

	return c.Redirect(ctl.Cfg.FrontendURL+"?success=true", fiber.StatusTemporaryRedirect)
}

func fetchGoogleUserInfo(accessToken string) (*googleUserInfo, error) {
	info := new(googleUserInfo)
	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetAuthToken(accessToken).
		SetResult(info).
		Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errors.New("userinfo request failed: " + resp.Status())
	}
	return info, nil
}

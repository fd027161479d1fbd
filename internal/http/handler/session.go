package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"filegate/internal/auth"
)

// LoginPage serves the password form. Visitors that already hold a session go to the index.
func LoginPage(authn *auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authn.VerifyAuth(c) {
			return c.Redirect("/", fiber.StatusFound)
		}
		return renderLogin(c, fiber.StatusOK, "")
	}
}

// Login checks the submitted password and starts a session.
//
//	@Summary	Start a session
//	@Tags		auth
//	@Accept		x-www-form-urlencoded
//	@Param		password	formData	string	true	"Shared password"
//	@Success	302
//	@Failure	401	{string}	string	"login page"
//	@Router		/auth [post]
func Login(authn *auth.Authenticator, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authn.ValidatePassword(c.FormValue("password")) {
			log.Info("login_failed", zap.String("request_id", requestIDFromCtx(c)), zap.String("ip", c.IP()))
			return renderLogin(c, fiber.StatusUnauthorized, "invalid_password")
		}
		token, err := authn.GenerateToken()
		if err != nil {
			log.Error("token_issue_failed", zap.String("request_id", requestIDFromCtx(c)), zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.Cookie(authn.CreateCookie(token))
		return c.Redirect("/", fiber.StatusFound)
	}
}

// Logout expires the session cookie. Only POST is accepted.
//
//	@Summary	End the session
//	@Tags		auth
//	@Success	302
//	@Failure	405
//	@Router		/logout [post]
func Logout(authn *auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			c.Set(fiber.HeaderAllow, fiber.MethodPost)
			return c.SendStatus(fiber.StatusMethodNotAllowed)
		}
		c.Cookie(authn.CreateExpiredCookie())
		return c.Redirect("/auth", fiber.StatusFound)
	}
}

// unauthenticated answers requests that reached a gated route without a session.
func unauthenticated(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
		return renderLogin(c, fiber.StatusOK, "")
	}
	return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", msg(langFromCtx(c), "unauthorized"))
}

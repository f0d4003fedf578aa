package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
	"github.com/divyesh350/Skill-Swap-Platform/internal/service/auth"
)

type AuthService interface {
	Register(ctx context.Context, params *model.RegisterParams) (*model.Account, string, error)
	VerifyEmail(ctx context.Context, token string) (*model.Account, error)
	Login(ctx context.Context, params *model.LoginParams) (*auth.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

func Register(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.RegisterParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateRegister(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		account, accessToken, err := authService.Register(c.Request().Context(), params)
		if err != nil {
			return fail(c, err)
		}

		return c.JSON(http.StatusCreated, map[string]interface{}{
			"message": "Registration successful. Please verify your email.",
			"user":    account.Summary(),
			"token":   accessToken,
		})
	}
}

func VerifyEmail(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.VerifyEmailParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateToken(params.Token, []string{}); len(details) > 0 {
			return validationFailed(c, details)
		}

		if _, err := authService.VerifyEmail(c.Request().Context(), params.Token); err != nil {
			return fail(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":  "Email verified successfully",
			"verified": true,
		})
	}
}

func Login(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LoginParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateLogin(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		result, err := authService.Login(c.Request().Context(), params)
		if err != nil {
			return fail(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"token":        result.AccessToken,
			"refreshToken": result.RefreshToken,
			"user":         result.Account.Summary(),
			"expiresIn":    result.ExpiresIn,
		})
	}
}

// ForgotPassword always answers with the same generic message so callers
// cannot probe which emails are registered.
func ForgotPassword(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.ForgotPasswordParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateEmail(params.Email, []string{}); len(details) > 0 {
			return validationFailed(c, details)
		}

		if err := authService.ForgotPassword(c.Request().Context(), params.Email); err != nil {
			return fail(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "If the email exists, a reset link will be sent.",
		})
	}
}

func ResetPassword(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.ResetPasswordParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateResetPassword(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		if err := authService.ResetPassword(c.Request().Context(), params.Token, params.NewPassword); err != nil {
			return fail(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Password reset successful.",
		})
	}
}

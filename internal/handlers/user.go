package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

const maxPhotoSize = 5 << 20 // 5MB

type UserService interface {
	Profile(ctx context.Context, id model.AccountID) (*model.Account, error)
	UpdateProfile(ctx context.Context, id model.AccountID, params *model.UpdateProfileParams) (*model.Account, error)
	PublicProfile(ctx context.Context, id model.AccountID) (*model.PublicView, error)
	SetPhoto(ctx context.Context, id model.AccountID, data []byte, contentType string) (*model.Account, error)
	RemovePhoto(ctx context.Context, id model.AccountID) (*model.Account, error)
	OfferedSkills(ctx context.Context, id model.AccountID) ([]model.OfferedSkill, error)
	AddOfferedSkill(ctx context.Context, id model.AccountID, params *model.OfferedSkillParams) (*model.OfferedSkill, error)
	UpdateOfferedSkill(ctx context.Context, id model.AccountID, skillID string, params *model.OfferedSkillParams) (*model.OfferedSkill, error)
	DeleteOfferedSkill(ctx context.Context, id model.AccountID, skillID string) error
	WantedSkills(ctx context.Context, id model.AccountID) ([]model.WantedSkill, error)
	AddWantedSkill(ctx context.Context, id model.AccountID, params *model.WantedSkillParams) (*model.WantedSkill, error)
	UpdateWantedSkill(ctx context.Context, id model.AccountID, skillID string, params *model.WantedSkillParams) (*model.WantedSkill, error)
	DeleteWantedSkill(ctx context.Context, id model.AccountID, skillID string) error
	Availability(ctx context.Context, id model.AccountID) (*model.Availability, error)
	UpdateAvailability(ctx context.Context, id model.AccountID, params *model.UpdateAvailabilityParams) (*model.Availability, error)
}

func GetProfile(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := userService.Profile(c.Request().Context(), CurrentPrincipal(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"user": account})
	}
}

func UpdateProfile(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.UpdateProfileParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateUpdateProfile(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		account, err := userService.UpdateProfile(c.Request().Context(), CurrentPrincipal(c).ID, params)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"user": account})
	}
}

func GetPublicProfile(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := userService.PublicProfile(c.Request().Context(), model.AccountID(c.Param("id")))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"user": view})
	}
}

func UploadPhoto(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return validationFailed(c, []string{"photo file required"})
		}
		if fileHeader.Size > maxPhotoSize {
			return validationFailed(c, []string{"photo cannot exceed 5MB"})
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return validationFailed(c, []string{"photo must be an image"})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fail(c, err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
		if err != nil {
			return fail(c, err)
		}

		account, err := userService.SetPhoto(c.Request().Context(), CurrentPrincipal(c).ID, data, contentType)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Profile photo updated",
			"photo":   account.Profile.Photo,
		})
	}
}

func DeletePhoto(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := userService.RemovePhoto(c.Request().Context(), CurrentPrincipal(c).ID); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"message": "Profile photo removed"})
	}
}

func GetOfferedSkills(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		skills, err := userService.OfferedSkills(c.Request().Context(), CurrentPrincipal(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"skills": skills})
	}
}

func AddOfferedSkill(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.OfferedSkillParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateOfferedSkill(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		skill, err := userService.AddOfferedSkill(c.Request().Context(), CurrentPrincipal(c).ID, params)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"skill": skill})
	}
}

func UpdateOfferedSkill(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.OfferedSkillParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateOfferedSkill(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		skill, err := userService.UpdateOfferedSkill(c.Request().Context(), CurrentPrincipal(c).ID, c.Param("skillId"), params)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"skill": skill})
	}
}

func DeleteOfferedSkill(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := userService.DeleteOfferedSkill(c.Request().Context(), CurrentPrincipal(c).ID, c.Param("skillId")); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"message": "Skill removed"})
	}
}

func GetWantedSkills(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		skills, err := userService.WantedSkills(c.Request().Context(), CurrentPrincipal(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"skills": skills})
	}
}

func AddWantedSkill(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.WantedSkillParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateWantedSkill(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		skill, err := userService.AddWantedSkill(c.Request().Context(), CurrentPrincipal(c).ID, params)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"skill": skill})
	}
}

func UpdateWantedSkill(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.WantedSkillParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateWantedSkill(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		skill, err := userService.UpdateWantedSkill(c.Request().Context(), CurrentPrincipal(c).ID, c.Param("skillId"), params)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"skill": skill})
	}
}

func DeleteWantedSkill(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := userService.DeleteWantedSkill(c.Request().Context(), CurrentPrincipal(c).ID, c.Param("skillId")); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"message": "Skill removed"})
	}
}

func GetAvailability(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		availability, err := userService.Availability(c.Request().Context(), CurrentPrincipal(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"availability": availability})
	}
}

func UpdateAvailability(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.UpdateAvailabilityParams{}
		if err := c.Bind(params); err != nil {
			return validationFailed(c, []string{"malformed request body"})
		}
		if details := validateAvailability(params); len(details) > 0 {
			return validationFailed(c, details)
		}

		availability, err := userService.UpdateAvailability(c.Request().Context(), CurrentPrincipal(c).ID, params)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"availability": availability})
	}
}

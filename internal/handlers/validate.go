package handlers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	specialPattern  = regexp.MustCompile(`[^A-Za-z0-9]`)
	timeSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

func validateEmail(email string, details []string) []string {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		details = append(details, "Valid email required")
	}
	return details
}

func validatePassword(password string, details []string) []string {
	if len(password) < 8 {
		details = append(details, "Password must be at least 8 characters")
	}
	if !lowerPattern.MatchString(password) {
		details = append(details, "Password must contain a lowercase letter")
	}
	if !upperPattern.MatchString(password) {
		details = append(details, "Password must contain an uppercase letter")
	}
	if !digitPattern.MatchString(password) {
		details = append(details, "Password must contain a number")
	}
	if !specialPattern.MatchString(password) {
		details = append(details, "Password must contain a special character")
	}
	return details
}

func validateToken(token string, details []string) []string {
	if len(token) < 32 || len(token) > 128 {
		details = append(details, "Invalid token length")
	}
	return details
}

func validateRegister(params *model.RegisterParams) []string {
	details := []string{}
	details = validateEmail(params.Email, details)
	details = validatePassword(params.Password, details)
	fullName := strings.TrimSpace(params.FullName)
	if len(fullName) < 2 || len(fullName) > 50 {
		details = append(details, "Full name must be 2-50 characters")
	} else if !fullNamePattern.MatchString(fullName) {
		details = append(details, "Full name must contain only letters and spaces")
	}
	return details
}

func validateLogin(params *model.LoginParams) []string {
	details := []string{}
	details = validateEmail(params.Email, details)
	if params.Password == "" {
		details = append(details, "Password cannot be empty")
	}
	return details
}

func validateResetPassword(params *model.ResetPasswordParams) []string {
	details := []string{}
	details = validateToken(params.Token, details)
	details = validatePassword(params.NewPassword, details)
	return details
}

func validateUpdateProfile(params *model.UpdateProfileParams) []string {
	details := []string{}
	if params.FullName != nil {
		fullName := strings.TrimSpace(*params.FullName)
		if len(fullName) < 2 || len(fullName) > 50 {
			details = append(details, "Full name must be 2-50 characters")
		} else if !fullNamePattern.MatchString(fullName) {
			details = append(details, "Full name must contain only letters and spaces")
		}
	}
	if params.Bio != nil && len(*params.Bio) > 500 {
		details = append(details, "Bio cannot exceed 500 characters")
	}
	return details
}

func validateSkillName(name string, details []string) []string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 50 {
		details = append(details, "Skill name must be 2-50 characters")
	}
	return details
}

func validateOfferedSkill(params *model.OfferedSkillParams) []string {
	details := []string{}
	details = validateSkillName(params.Name, details)
	if params.Category == "" {
		details = append(details, "Category is required")
	}
	switch params.Level {
	case "", model.SkillLevelBeginner, model.SkillLevelIntermediate, model.SkillLevelAdvanced, model.SkillLevelExpert:
	default:
		details = append(details, "Invalid skill level")
	}
	if len(params.Description) > 200 {
		details = append(details, "Description cannot exceed 200 characters")
	}
	return details
}

func validateWantedSkill(params *model.WantedSkillParams) []string {
	details := []string{}
	details = validateSkillName(params.Name, details)
	if params.Category == "" {
		details = append(details, "Category is required")
	}
	switch params.Priority {
	case "", model.SkillPriorityLow, model.SkillPriorityMedium, model.SkillPriorityHigh:
	default:
		details = append(details, "Invalid skill priority")
	}
	if len(params.Description) > 200 {
		details = append(details, "Description cannot exceed 200 characters")
	}
	return details
}

func validateAvailability(params *model.UpdateAvailabilityParams) []string {
	details := []string{}
	for _, day := range params.Schedule {
		if !weekdays[day.Day] {
			details = append(details, fmt.Sprintf("Invalid day: %s", day.Day))
		}
		for _, slot := range day.TimeSlots {
			if !timeSlotPattern.MatchString(slot.Start) || !timeSlotPattern.MatchString(slot.End) {
				details = append(details, "Time slots must be HH:MM")
			}
		}
	}
	return details
}

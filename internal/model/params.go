package model

type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type VerifyEmailParams struct {
	Token string `json:"token"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordParams struct {
	Email string `json:"email"`
}

type ResetPasswordParams struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type UpdateProfileParams struct {
	FullName    *string      `json:"fullName"`
	Bio         *string      `json:"bio"`
	City        *string      `json:"city"`
	Country     *string      `json:"country"`
	Timezone    *string      `json:"timezone"`
	Languages   []string     `json:"languages"`
	IsPublic    *bool        `json:"isPublic"`
	Preferences *Preferences `json:"preferences"`
}

type OfferedSkillParams struct {
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Level       SkillLevel `json:"level"`
	Description string     `json:"description"`
}

type WantedSkillParams struct {
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Priority    SkillPriority `json:"priority"`
	Description string        `json:"description"`
}

type UpdateAvailabilityParams struct {
	Timezone     *string       `json:"timezone"`
	IsAvailable  *bool         `json:"isAvailable"`
	Schedule     []DaySchedule `json:"schedule"`
	BlockedDates []string      `json:"blockedDates"` // yyyy-mm-dd
}

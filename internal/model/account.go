package model

import "time"

type AccountID string

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelExpert       SkillLevel = "Expert"
)

type SkillPriority string

const (
	SkillPriorityLow    SkillPriority = "Low"
	SkillPriorityMedium SkillPriority = "Medium"
	SkillPriorityHigh   SkillPriority = "High"
)

// Account is the aggregate root. Everything hanging off it (profile, skills,
// availability, preferences) is stored inside the account row, so a single
// update to the row is the unit of consistency.
type Account struct {
	ID                AccountID    `db:"ID" json:"id"`
	CreatedAt         time.Time    `db:"CreatedAt" json:"createdAt"`
	UpdatedAt         time.Time    `db:"UpdatedAt" json:"updatedAt"`
	Email             string       `db:"Email" json:"email"`
	Password          string       `db:"Password" json:"-"`
	Role              string       `db:"Role" json:"role"`
	Verified          bool         `db:"Verified" json:"emailVerified"`
	VerificationToken *string      `db:"VerificationToken" json:"-"`
	ResetToken        *string      `db:"ResetToken" json:"-"`
	ResetExpiry       *time.Time   `db:"ResetExpiry" json:"-"`
	FailedAttempts    int          `db:"FailedAttempts" json:"-"`
	LockedUntil       *time.Time   `db:"LockedUntil" json:"-"`
	LastLoginAt       *time.Time   `db:"LastLoginAt" json:"-"`
	Profile           Profile      `db:"Profile" json:"profile"`
	Skills            Skills       `db:"Skills" json:"skills"`
	Availability      Availability `db:"Availability" json:"availability"`
	Preferences       Preferences  `db:"Preferences" json:"preferences"`
}

type Profile struct {
	FullName  string     `json:"fullName"`
	Bio       string     `json:"bio,omitempty"`
	City      string     `json:"city,omitempty"`
	Country   string     `json:"country,omitempty"`
	Timezone  string     `json:"timezone,omitempty"`
	Languages []string   `json:"languages,omitempty"`
	IsPublic  bool       `json:"isPublic"`
	Photo     *Photo     `json:"photo,omitempty"`
}

type Photo struct {
	URL        string    `json:"url"`
	ObjectKey  string    `json:"-"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Skills struct {
	Offered []OfferedSkill `json:"offered"`
	Wanted  []WantedSkill  `json:"wanted"`
}

type OfferedSkill struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Level       SkillLevel `json:"level,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	IsActive    bool       `json:"isActive"`
}

type WantedSkill struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Priority    SkillPriority `json:"priority"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	IsActive    bool          `json:"isActive"`
}

type Availability struct {
	Timezone     string        `json:"timezone,omitempty"`
	IsAvailable  bool          `json:"isAvailable"`
	Schedule     []DaySchedule `json:"schedule,omitempty"`
	BlockedDates []time.Time   `json:"blockedDates,omitempty"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

type DaySchedule struct {
	Day       string     `json:"day"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

type TimeSlot struct {
	Start    string `json:"start"` // HH:MM
	End      string `json:"end"`   // HH:MM
	IsActive bool   `json:"isActive"`
}

type Preferences struct {
	EmailNotifications EmailNotifications `json:"emailNotifications"`
	InAppNotifications bool               `json:"inAppNotifications"`
	MaxDistance        int                `json:"maxDistance"`
	PreferredLanguages []string           `json:"preferredLanguages,omitempty"`
}

type EmailNotifications struct {
	NewRequests bool `json:"newRequests"`
	Messages    bool `json:"messages"`
	Reminders   bool `json:"reminders"`
	Marketing   bool `json:"marketing"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: EmailNotifications{
			NewRequests: true,
			Messages:    true,
			Reminders:   true,
		},
		InAppNotifications: true,
		MaxDistance:        50,
	}
}

// Summary is the account shape returned from register/login responses.
type Summary struct {
	ID              AccountID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	ProfileComplete bool      `json:"profileComplete"`
}

func (a *Account) Summary() Summary {
	return Summary{
		ID:              a.ID,
		Email:           a.Email,
		FullName:        a.Profile.FullName,
		ProfileComplete: a.Profile.FullName != "" && len(a.Skills.Offered) > 0,
	}
}

// PublicView strips credential, token and lockout state for the public
// profile endpoint.
type PublicView struct {
	ID           AccountID    `json:"id"`
	Profile      Profile      `json:"profile"`
	Skills       Skills       `json:"skills"`
	Availability Availability `json:"availability"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (a *Account) PublicView() PublicView {
	return PublicView{
		ID:           a.ID,
		Profile:      a.Profile,
		Skills:       a.Skills,
		Availability: a.Availability,
		CreatedAt:    a.CreatedAt,
	}
}

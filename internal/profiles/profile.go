package profiles

import (
	"time"

	"github.com/2beens/fitnessxs/pkg"
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

type Profile struct {
	ID                 string            `json:"id"`
	DisplayName        string            `json:"displayName"`
	AvatarURL          string            `json:"avatarUrl,omitempty"`
	Mail               string            `json:"mail,omitempty"`
	Goal               string            `json:"goal,omitempty"`
	GoalDescription    string            `json:"goalDescription,omitempty"`
	Timezone           string            `json:"timezone"`
	TrainingDays       []pkg.TrainingDay `json:"trainingDays"`
	OnboardingComplete bool              `json:"onboardingComplete"`
	Theme              Theme             `json:"theme"`
	UserCode           string            `json:"userCode"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Summary is the public part of a profile, shown to other users.
type Summary struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	UserCode    string `json:"userCode"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Goal        string `json:"goal,omitempty"`
}

func (p *Profile) Summary() Summary {
	return Summary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		UserCode:    p.UserCode,
		AvatarURL:   p.AvatarURL,
		Goal:        p.Goal,
	}
}

// ProfileInput is what the onboarding and the profile edit screens submit.
type ProfileInput struct {
	DisplayName        string            `json:"displayName"`
	Email              string            `json:"email"`
	Goal               string            `json:"goal"`
	GoalDescription    string            `json:"goalDescription"`
	Timezone           string            `json:"timezone"`
	TrainingDays       []pkg.TrainingDay `json:"trainingDays"`
	AvatarURL          string            `json:"avatarUrl"`
	OnboardingComplete *bool             `json:"onboardingComplete"`
}

func trainingDaysToStrings(days []pkg.TrainingDay) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

func stringsToTrainingDays(days []string) []pkg.TrainingDay {
	out := make([]pkg.TrainingDay, 0, len(days))
	for _, d := range days {
		out = append(out, pkg.TrainingDay(d))
	}
	return out
}

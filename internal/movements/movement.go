package movements

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Equipment string

var equipments = map[Equipment]string{
	"barbell":    "Barbell",
	"dumbbell":   "Dumbbell",
	"bodyweight": "Bodyweight",
	"machine":    "Machine",
	"cable":      "Cable",
	"kettlebell": "Kettlebell",
	"band":       "Band",
	"other":      "Other",
}

func (e Equipment) Valid() bool {
	_, ok := equipments[e]
	return ok
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

const generalCategoryLabel = "General"

var Categories = []Category{
	{ID: "push", Name: "Push", Icon: "💪"},
	{ID: "pull", Name: "Pull", Icon: "🏋️"},
	{ID: "legs", Name: "Legs", Icon: "🦵"},
	{ID: "core", Name: "Core", Icon: "🧘"},
	{ID: "cardio", Name: "Cardio", Icon: "❤️"},
}

// CategoryLabel returns the display name of the category, "General" for unknown ids.
func CategoryLabel(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return generalCategoryLabel
}

func validCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

type Movement struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	CategoryID    *string     `json:"categoryId"`
	CategoryLabel string      `json:"categoryLabel"`
	Equipment     *Equipment  `json:"equipment"`
	Difficulty    *Difficulty `json:"difficulty"`
	Instructions  string      `json:"instructions,omitempty"`
	VideoURL      string      `json:"videoUrl,omitempty"`
	ImageURL      string      `json:"imageUrl,omitempty"`
	IsCustom      bool        `json:"isCustom"`
	OwnerID       *string     `json:"ownerId"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type ListParams struct {
	Search     string
	CategoryID string
	Equipment  string
}

type CreatePayload struct {
	Name         string  `json:"name"`
	CategoryID   *string `json:"categoryId"`
	Equipment    *string `json:"equipment"`
	Difficulty   *string `json:"difficulty"`
	Instructions string  `json:"instructions"`
	VideoURL     string  `json:"videoUrl"`
}

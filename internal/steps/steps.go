package steps

import (
	"time"

	"github.com/2beens/fitnessxs/pkg"
)

const SourceManual = "manual"

// DailySteps is the step count reported for one day. Reporting the same
// day again overwrites the count.
type DailySteps struct {
	Day       pkg.Date  `json:"day"`
	Steps     int       `json:"steps"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReportPayload struct {
	// defaults to today in the user's timezone
	Day    *pkg.Date `json:"day,omitempty"`
	Steps  int       `json:"steps"`
	Source string    `json:"source,omitempty"`
}

package dashboard

import (
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/events"
)

const (
	DefaultTimelineDays = 30
	MaxTimelineDays     = 365

	statsCacheKey = "dashboard:stats"
)

// Stats is the headline numbers block of the dashboard
type Stats struct {
	UsersByStatus  map[string]int64 `json:"usersByStatus"`
	EventsByStatus map[string]int64 `json:"eventsByStatus"`
	EventsByType   map[string]int64 `json:"eventsByType"`
	OpenReports    map[string]int64 `json:"openReports"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

type TimelineQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

type Timeline struct {
	Days   int                 `json:"days"`
	Points []events.DailyCount `json:"points"`
}

package controller

import "github.com/walkcore/walkcore-client/internal/models"

// SessionOverview is the display model derived from session DTOs. It is
// produced only on a Success transition and is never sent back to the
// backend. CreatorUsername, ImageURL and LocationName are nil until the
// backend contract supplies them.
type SessionOverview struct {
	ID              string
	Title           string
	CreatorUsername *string
	Description     string
	DateTimeRange   string
	ImageURL        *string
	LocationName    *string
}

// overviewFromActive maps the user's ongoing session to its display model
func overviewFromActive(dto *models.ActiveSession) SessionOverview {
	return SessionOverview{
		ID:            dto.SessionID,
		Title:         dto.Title,
		Description:   "Current active session progress",
		DateTimeRange: dto.StartTime + " - " + dto.EndTime,
	}
}

// overviewFromSession maps a full session record to its display model. The
// location label is the single mapper field genuinely derived from response
// data: REMOTE sessions read "Remote", anything else "On-site".
func overviewFromSession(dto *models.Session) SessionOverview {
	location := "On-site"
	if dto.Mode == models.SessionModeRemote {
		location = "Remote"
	}

	return SessionOverview{
		ID:            dto.ID,
		Title:         dto.Title,
		Description:   dto.Description,
		DateTimeRange: dto.StartTime + " - " + dto.EndTime,
		LocationName:  &location,
	}
}

package minutes

import (
	"github.com/minutestack/chamber-minutes/internal/domain/entities"
)

// VersionPageResponse is one page of the version history.
type VersionPageResponse struct {
	Items      []entities.MinutesVersion `json:"items"`
	Offset     int                       `json:"offset"`
	Limit      int                       `json:"limit"`
	NextOffset *int                      `json:"next_offset"`
	HasMore    bool                      `json:"has_more"`
	Total      int64                     `json:"total"`
}

// ConflictResponse is the body of a rejected compare-and-swap write.
// It carries the winning state so the caller can rebase locally.
type ConflictResponse struct {
	Error          string `json:"error"`
	CurrentVersion int    `json:"current_version"`
	CurrentContent string `json:"current_content"`
}

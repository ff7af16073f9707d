package domain

import "time"

type LiveStatus string

const (
	LiveStatusCreated LiveStatus = "CREATED"
	LiveStatusLive    LiveStatus = "LIVE"
	LiveStatusEnded   LiveStatus = "ENDED"
)

// ParseLiveStatus converts the wire status to a LiveStatus. The platform
// reports a running stream as PLAYING.
func ParseLiveStatus(s string) (LiveStatus, error) {
	switch s {
	case "CREATED":
		return LiveStatusCreated, nil
	case "PLAYING", "LIVE":
		return LiveStatusLive, nil
	case "ENDED":
		return LiveStatusEnded, nil
	default:
		return "", ErrUnknownLiveStatus
	}
}

type CategoryNode struct {
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	Subcategories []CategoryNode `json:"subcategories,omitempty"`
}

// LiveStream is a live show snapshot. Fields not selected by the query that
// produced it are left at their zero value.
type LiveStream struct {
	ID                           string         `json:"id"`
	Status                       LiveStatus     `json:"status"`
	Title                        string         `json:"title"`
	TrailerURL                   *string        `json:"trailerUrl"`
	TrailerThumbnailURL          *string        `json:"trailerThumbnailUrl"`
	StartTime                    time.Time      `json:"startTime"`
	Categories                   []string       `json:"categories"`
	CategoryNodes                []CategoryNode `json:"categoryNodes"`
	ActiveViewers                int            `json:"activeViewers"`
	TotalWatchlistUsers          int            `json:"totalWatchlistUsers"`
	IsSellerInternationalToBuyer bool           `json:"isSellerInternationalToBuyer"`
	IsUserBanned                 bool           `json:"isUserBanned"`
	IsUserModerator              bool           `json:"isUserModerator"`
	NominatedModerators          []string       `json:"nominatedModerators"`
	ExplicitContent              bool           `json:"explicitContent"`
	IsHiddenBySeller             bool           `json:"isHiddenBySeller"`
	PinnedProductID              *string        `json:"pinnedProductId"`
	StreamToken                  string         `json:"streamToken"`
	User                         *User          `json:"user"`
}

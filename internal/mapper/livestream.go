package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/dom/whatnot-go/internal/domain"
)

type categoryNodeWire struct {
	ID            flexString         `json:"id"`
	Label         string             `json:"label"`
	Subcategories []categoryNodeWire `json:"subcategories"`
}

type liveStreamWire struct {
	ID                           flexString         `json:"id"`
	Status                       string             `json:"status"`
	Title                        string             `json:"title"`
	TrailerURL                   *string            `json:"trailerUrl"`
	TrailerThumbnailURL          *string            `json:"trailerThumbnailUrl"`
	StartTime                    millisTime         `json:"startTime"`
	Categories                   []string           `json:"categories"`
	CategoryNodes                []categoryNodeWire `json:"categoryNodes"`
	ActiveViewers                int                `json:"activeViewers"`
	TotalWatchlistUsers          int                `json:"totalWatchlistUsers"`
	IsSellerInternationalToBuyer bool               `json:"isSellerInternationalToBuyer"`
	IsUserBanned                 bool               `json:"isUserBanned"`
	IsUserModerator              bool               `json:"isUserModerator"`
	NominatedModerators          []struct {
		ID flexString `json:"id"`
	} `json:"nominatedModerators"`
	ExplicitContent  bool        `json:"explicitContent"`
	IsHiddenBySeller bool        `json:"isHiddenBySeller"`
	PinnedProductID  *flexString `json:"pinnedProductId"`
	StreamToken      string      `json:"streamToken"`
	User             *userWire   `json:"user"`
}

// CategoryNode maps a standalone category node.
func (m *Mapper) CategoryNode(raw json.RawMessage) (*domain.CategoryNode, error) {
	const op = "mapper.CategoryNode"

	if isNull(raw) {
		return nil, nil
	}

	var w categoryNodeWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	node := categoryNode(w)
	return &node, nil
}

func categoryNode(w categoryNodeWire) domain.CategoryNode {
	node := domain.CategoryNode{
		ID:    w.ID.id(),
		Label: w.Label,
	}
	for _, sub := range w.Subcategories {
		node.Subcategories = append(node.Subcategories, categoryNode(sub))
	}
	return node
}

// LiveStream maps a live stream object. A null object yields a nil stream.
func (m *Mapper) LiveStream(raw json.RawMessage) (*domain.LiveStream, error) {
	const op = "mapper.LiveStream"

	if isNull(raw) {
		return nil, nil
	}

	var w liveStreamWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, missing(op, "id")
	}

	status, err := domain.ParseLiveStatus(w.Status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %q", op, err, w.Status)
	}

	live := &domain.LiveStream{
		ID:                           w.ID.id(),
		Status:                       status,
		Title:                        w.Title,
		TrailerURL:                   w.TrailerURL,
		TrailerThumbnailURL:          w.TrailerThumbnailURL,
		StartTime:                    w.StartTime.Time,
		Categories:                   w.Categories,
		ActiveViewers:                w.ActiveViewers,
		TotalWatchlistUsers:          w.TotalWatchlistUsers,
		IsSellerInternationalToBuyer: w.IsSellerInternationalToBuyer,
		IsUserBanned:                 w.IsUserBanned,
		IsUserModerator:              w.IsUserModerator,
		ExplicitContent:              w.ExplicitContent,
		IsHiddenBySeller:             w.IsHiddenBySeller,
		PinnedProductID:              optionalID(w.PinnedProductID),
		StreamToken:                  w.StreamToken,
	}

	live.CategoryNodes = make([]domain.CategoryNode, 0, len(w.CategoryNodes))
	for _, n := range w.CategoryNodes {
		live.CategoryNodes = append(live.CategoryNodes, categoryNode(n))
	}

	live.NominatedModerators = make([]string, 0, len(w.NominatedModerators))
	for _, mod := range w.NominatedModerators {
		live.NominatedModerators = append(live.NominatedModerators, mod.ID.id())
	}

	if w.User != nil {
		user, err := m.user(op+".user", w.User)
		if err != nil {
			return nil, err
		}
		live.User = user
	}

	return live, nil
}

type liveEdgesWire struct {
	Edges []struct {
		Node json.RawMessage `json:"node"`
	} `json:"edges"`
}

// LiveStreamConnection maps a search connection to its streams in edge
// order, keeping at most limit of them. A limit of zero or less keeps all.
func (m *Mapper) LiveStreamConnection(raw json.RawMessage, limit int) ([]domain.LiveStream, error) {
	const op = "mapper.LiveStreamConnection"

	lives := []domain.LiveStream{}
	if isNull(raw) {
		return lives, nil
	}

	var w liveEdgesWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}

	for _, edge := range w.Edges {
		if limit > 0 && len(lives) >= limit {
			break
		}
		live, err := m.LiveStream(edge.Node)
		if err != nil {
			return nil, err
		}
		if live == nil {
			continue
		}
		lives = append(lives, *live)
	}

	return lives, nil
}

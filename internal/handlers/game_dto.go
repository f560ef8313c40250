package handlers

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type PointDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePoint(src url.Values) (PointDTO, error) {
	var dto PointDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("row and col must be integers: %w", err)
	}
	return dto, nil
}

type SessionDTO struct {
	SessionID string         `json:"session_id"`
	Token     string         `json:"token,omitempty"`
	ExpiresAt int64          `json:"expires_at,omitempty"`
	Layout    string         `json:"layout"`
	Game      int            `json:"game"`
	State     board.Snapshot `json:"state"`
}

type RevealDTO struct {
	board.RevealResult
	State board.Snapshot `json:"state"`
}

type FlagDTO struct {
	board.FlagResult
	State board.Snapshot `json:"state"`
}

// LayoutDTO describes a layout without its bombs.
type LayoutDTO struct {
	Name     string          `json:"name"`
	Size     int             `json:"size"`
	Bombs    int             `json:"bombs"`
	Disabled []board.Coord   `json:"disabled"`
	Rewards  []layout.Reward `json:"rewards"`
}

func NewLayoutDTO(l layout.Layout) LayoutDTO {
	bombs := make(map[board.Coord]struct{}, len(l.Config.Bombs))
	for _, c := range l.Config.Bombs {
		bombs[c] = struct{}{}
	}
	rewards := l.Rewards
	if rewards == nil {
		rewards = []layout.Reward{}
	}
	return LayoutDTO{
		Name:     l.Name,
		Size:     l.Config.Size,
		Bombs:    len(bombs),
		Disabled: l.Config.DisabledCoords(),
		Rewards:  rewards,
	}
}

type RecordsQueryDTO struct {
	Limit   int    `schema:"limit"`
	Outcome string `schema:"outcome"`
	Layout  string `schema:"layout"`
}

const (
	defaultRecordsLimit = 20
	maxRecordsLimit     = 100
)

func ParseRecordsQuery(src url.Values) (RecordsQueryDTO, error) {
	var dto RecordsQueryDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	switch {
	case dto.Limit < 0:
		return dto, fmt.Errorf("limit must not be negative")
	case dto.Limit == 0:
		dto.Limit = defaultRecordsLimit
	case dto.Limit > maxRecordsLimit:
		dto.Limit = maxRecordsLimit
	}
	switch dto.Outcome {
	case "", "won", "lost":
	default:
		return dto, fmt.Errorf(`outcome must be "won" or "lost"`)
	}
	return dto, nil
}

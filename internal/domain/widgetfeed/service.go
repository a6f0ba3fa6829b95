package widgetfeed

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Selection modes and display styles understood by the feed.
const (
	TypeLatest = "latest"
	TypeRandom = "random"

	StyleGrid     = "1"
	StyleFeatured = "2"

	DefaultLimit = 8
)

// Featured placements only show items above this price.
const featuredPriceThreshold = 50.0

// ErrClientRequired is returned when the mandatory client id is missing.
var ErrClientRequired = errors.New("client ID is required")

// Params are the echoed request parameters of one feed query.
type Params struct {
	Client string
	Type   string
	Style  string
	Limit  int
}

// Result is the feed payload served to embedding pages.
type Result struct {
	Products  []Item    `json:"products"`
	Client    string    `json:"client"`
	Type      string    `json:"type"`
	Style     string    `json:"style"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// Service filters, sorts and limits the widget catalog. The shuffle and
// clock are injectable so tests stay deterministic.
type Service struct {
	repo    Repository
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
	log     zerolog.Logger
}

// NewService wires the feed service with its catalog.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		now:     time.Now,
		shuffle: rand.Shuffle,
		log:     log.With().Str("component", "widget-feed").Logger(),
	}
}

// Query applies the feed contract: style filter, type sort, then limit.
// Total reports the filtered count before limiting.
func (s *Service) Query(params Params) (Result, error) {
	if strings.TrimSpace(params.Client) == "" {
		return Result{}, ErrClientRequired
	}

	if params.Type == "" {
		params.Type = TypeRandom
	}
	if params.Style == "" {
		params.Style = StyleGrid
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	items := s.repo.All()

	if params.Style == StyleFeatured {
		filtered := items[:0]
		for _, item := range items {
			if item.Price > featuredPriceThreshold {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	switch params.Type {
	case TypeLatest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case TypeRandom:
		s.shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}
	// Any other type keeps catalog order.

	total := len(items)
	limit := params.Limit
	if limit > total {
		limit = total
	}

	s.log.Debug().
		Str("client", params.Client).
		Str("type", params.Type).
		Str("style", params.Style).
		Int("total", total).
		Int("returned", limit).
		Msg("widget feed query")

	return Result{
		Products:  items[:limit],
		Client:    params.Client,
		Type:      params.Type,
		Style:     params.Style,
		Total:     total,
		Timestamp: s.now().UTC(),
	}, nil
}

package menu

import (
	"context"
	"strconv"
	"sync"

	"github.com/mesa-pos/mesa/internal/domain"
)

// StaticService is an in-memory domain.MenuService backed by a fixed item
// list. It serves local development without a database and test fixtures.
type StaticService struct {
	mu    sync.RWMutex
	items []domain.MenuItem
	byID  map[int64]int
}

// Compile-time check that StaticService implements domain.MenuService.
var _ domain.MenuService = (*StaticService)(nil)

// NewStaticService creates a catalog from the given items, preserving order.
func NewStaticService(items ...domain.MenuItem) *StaticService {
	s := &StaticService{
		items: append([]domain.MenuItem(nil), items...),
		byID:  make(map[int64]int, len(items)),
	}
	for i := range s.items {
		s.byID[s.items[i].ID] = i
	}
	return s
}

// ListItems returns all catalog entries in menu order.
func (s *StaticService) ListItems(_ context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MenuItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// GetItem returns a single catalog entry by ID.
func (s *StaticService) GetItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, domain.NotFound("menu.get", "menu item", strconv.FormatInt(id, 10))
	}
	item := s.items[i]
	return &item, nil
}

// SetAvailability flips an item's availability, e.g. when the kitchen runs
// out of an ingredient mid-service.
func (s *StaticService) SetAvailability(_ context.Context, id int64, availability domain.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return domain.NotFound("menu.set_availability", "menu item", strconv.FormatInt(id, 10))
	}
	s.items[i].Availability = availability
	return nil
}

// DefaultMenu is a small fixture catalog for local runs and tests.
func DefaultMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{
			ID:              1,
			Name:            "Pho Bo",
			Category:        "Noodles",
			Description:     "Beef noodle soup with herbs",
			BasePrice:       100_000,
			Availability:    domain.AvailabilityAvailable,
			ChefRecommended: true,
			ModifierGroups: []domain.ModifierGroup{
				{
					ID:          "size",
					Name:        "Size",
					Required:    true,
					Cardinality: domain.CardinalitySingle,
					Options: []domain.ModifierOption{
						{ID: "small", Name: "Small", PriceDelta: -10_000},
						{ID: "regular", Name: "Regular", PriceDelta: 0},
						{ID: "large", Name: "Large", PriceDelta: 20_000},
					},
				},
				{
					ID:          "extras",
					Name:        "Extras",
					Cardinality: domain.CardinalityMulti,
					Options: []domain.ModifierOption{
						{ID: "beef", Name: "Extra Beef", PriceDelta: 30_000},
						{ID: "noodles", Name: "Extra Noodles", PriceDelta: 10_000},
					},
				},
			},
		},
		{
			ID:           2,
			Name:         "Goi Cuon",
			Category:     "Starters",
			Description:  "Fresh spring rolls, two per serving",
			BasePrice:    60_000,
			Availability: domain.AvailabilityAvailable,
		},
		{
			ID:           3,
			Name:         "Ca Phe Sua Da",
			Category:     "Drinks",
			Description:  "Iced milk coffee",
			BasePrice:    35_000,
			Availability: domain.AvailabilityAvailable,
			ModifierGroups: []domain.ModifierGroup{
				{
					ID:          "sweetness",
					Name:        "Sweetness",
					Cardinality: domain.CardinalitySingle,
					Options: []domain.ModifierOption{
						{ID: "normal", Name: "Normal", PriceDelta: 0},
						{ID: "less", Name: "Less Sweet", PriceDelta: 0},
					},
				},
			},
		},
		{
			ID:           4,
			Name:         "Banh Xeo",
			Category:     "Mains",
			Description:  "Crispy savory pancake",
			BasePrice:    85_000,
			Availability: domain.AvailabilitySoldOut,
		},
	}
}

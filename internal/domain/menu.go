package domain

import "context"

// Menu-related domain errors.
var (
	ErrMenuItemUnavailable = &Error{Code: ECONFLICT, Message: "Menu item is not available"}
)

// Availability describes whether a menu item can currently be ordered.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilitySoldOut     Availability = "sold_out"
	AvailabilityUnavailable Availability = "unavailable"
)

// Valid reports whether the value is one of the known availability states.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilitySoldOut, AvailabilityUnavailable:
		return true
	}
	return false
}

// Cardinality describes how many options may be chosen from a modifier group.
type Cardinality string

const (
	CardinalitySingle Cardinality = "single"
	CardinalityMulti  Cardinality = "multi"
)

// MenuItem is a purchasable catalog entry. Items are created and maintained
// by the catalog backend; this service treats them as read-only.
type MenuItem struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	BasePrice       int64           `json:"base_price"`
	Availability    Availability    `json:"availability"`
	ChefRecommended bool            `json:"chef_recommended,omitempty"`
	ImageURLs       []string        `json:"image_urls,omitempty"`
	ModifierGroups  []ModifierGroup `json:"modifier_groups,omitempty"`
}

// Group returns the modifier group with the given ID, if present.
func (m *MenuItem) Group(groupID string) (*ModifierGroup, bool) {
	for i := range m.ModifierGroups {
		if m.ModifierGroups[i].ID == groupID {
			return &m.ModifierGroups[i], true
		}
	}
	return nil, false
}

// ModifierGroup is a named set of choosable options attached to a menu item.
type ModifierGroup struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Required    bool             `json:"required"`
	Cardinality Cardinality      `json:"cardinality"`
	Options     []ModifierOption `json:"options"`
}

// Option returns the option with the given ID, if present.
func (g *ModifierGroup) Option(optionID string) (*ModifierOption, bool) {
	for i := range g.Options {
		if g.Options[i].ID == optionID {
			return &g.Options[i], true
		}
	}
	return nil, false
}

// ModifierOption is one selectable choice within a group. The price delta is
// signed: a smaller size may discount the base price.
type ModifierOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}

// SelectedModifiers maps a modifier group ID to the chosen option IDs.
// A selection is built once when an item is added to the cart and never
// mutated afterwards; changing modifiers creates a new, distinct cart line.
type SelectedModifiers map[string][]string

// Clone returns a deep copy so cart lines cannot alias caller-owned maps.
func (s SelectedModifiers) Clone() SelectedModifiers {
	if s == nil {
		return nil
	}
	out := make(SelectedModifiers, len(s))
	for group, options := range s {
		out[group] = append([]string(nil), options...)
	}
	return out
}

// MenuService provides access to the catalog. Items themselves are created
// and maintained by the catalog backend; the only write this service owns is
// the availability flag, which waiters flip mid-service.
type MenuService interface {
	// ListItems returns all catalog entries in menu order.
	ListItems(ctx context.Context) ([]MenuItem, error)

	// GetItem returns a single catalog entry by ID.
	GetItem(ctx context.Context, id int64) (*MenuItem, error)

	// SetAvailability flips an item's availability, e.g. when the kitchen
	// runs out of an ingredient.
	SetAvailability(ctx context.Context, id int64, availability Availability) error
}

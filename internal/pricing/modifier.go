package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesa-pos/mesa/internal/domain"
)

// ResolveModifierPrice computes the per-unit price contributed by a modifier
// selection. Option IDs that no longer exist on the item (stale selections)
// are ignored rather than rejected; the sum may be negative when options
// discount the base price. The function is pure: it never mutates the item
// or the selections.
func ResolveModifierPrice(item *domain.MenuItem, selections domain.SelectedModifiers) int64 {
	if item == nil || len(item.ModifierGroups) == 0 || len(selections) == 0 {
		return 0
	}

	var total int64
	for i := range item.ModifierGroups {
		group := &item.ModifierGroups[i]
		for _, optionID := range selections[group.ID] {
			if option, ok := group.Option(optionID); ok {
				total += option.PriceDelta
			}
		}
	}
	return total
}

// ValidateSelections checks a selection against an item's modifier groups
// before the item may be added to a cart:
//
//   - every required group must have at least one chosen option
//   - a single-cardinality group may have at most one chosen option
//   - chosen options must exist on their group
//
// Unknown group IDs in the selection are ignored, matching the resolver's
// leniency towards stale data.
func ValidateSelections(item *domain.MenuItem, selections domain.SelectedModifiers) error {
	const op = "pricing.validate_selections"

	for i := range item.ModifierGroups {
		group := &item.ModifierGroups[i]
		chosen := selections[group.ID]

		if group.Required && len(chosen) == 0 {
			return domain.Invalid(op, fmt.Sprintf("a choice is required for %q", group.Name))
		}
		if group.Cardinality == domain.CardinalitySingle && len(chosen) > 1 {
			return domain.Invalid(op, fmt.Sprintf("only one choice is allowed for %q", group.Name))
		}
		for _, optionID := range chosen {
			if _, ok := group.Option(optionID); !ok {
				return domain.Invalid(op, fmt.Sprintf("unknown option %q for %q", optionID, group.Name))
			}
		}
	}
	return nil
}

// SelectionKey returns the canonical serialized form of a selection: groups
// sorted by ID, option IDs sorted within each group, empty groups dropped.
// Two selections with the same canonical form are considered identical for
// cart line merging.
func SelectionKey(selections domain.SelectedModifiers) string {
	if len(selections) == 0 {
		return ""
	}

	groups := make([]string, 0, len(selections))
	for groupID, options := range selections {
		if len(options) == 0 {
			continue
		}
		sorted := append([]string(nil), options...)
		sort.Strings(sorted)
		groups = append(groups, groupID+":"+strings.Join(sorted, ","))
	}
	sort.Strings(groups)
	return strings.Join(groups, "|")
}

// LineKey is the full cart line identity: item ID plus selection key.
// Both merging on add and targeting on update/remove use this key, so a
// mutation can never silently hit the wrong line when two lines share an
// item ID with different modifiers.
func LineKey(itemID int64, selections domain.SelectedModifiers) string {
	key := SelectionKey(selections)
	if key == "" {
		return fmt.Sprintf("%d", itemID)
	}
	return fmt.Sprintf("%d|%s", itemID, key)
}

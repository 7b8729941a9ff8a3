package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesa-pos/mesa/internal/domain"
)

// MenuService implements domain.MenuService using PostgreSQL.
type MenuService struct {
	pool *pgxpool.Pool
}

// Compile-time check that MenuService implements domain.MenuService.
var _ domain.MenuService = (*MenuService)(nil)

// NewMenuService creates a new PostgreSQL-backed menu service.
func NewMenuService(pool *pgxpool.Pool) *MenuService {
	return &MenuService{pool: pool}
}

// ListItems returns all menu items with their modifier groups, ordered by
// category and name.
func (s *MenuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, description, base_price, availability, chef_recommended, image_urls
		FROM menu_items
		ORDER BY category, name`)
	if err != nil {
		return nil, domain.Internal(err, "menu.list", "failed to list menu items")
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, domain.Internal(err, "menu.list", "failed to scan menu item")
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "menu.list", "failed to read menu items")
	}

	for i := range items {
		groups, err := s.loadGroups(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].ModifierGroups = groups
	}

	return items, nil
}

// GetItem returns a single menu item with its modifier groups.
func (s *MenuService) GetItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, category, description, base_price, availability, chef_recommended, image_urls
		FROM menu_items
		WHERE id = $1`, id)

	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("menu.get", "menu item", strconv.FormatInt(id, 10))
		}
		return nil, domain.Internal(err, "menu.get", "failed to get menu item")
	}

	groups, err := s.loadGroups(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.ModifierGroups = groups

	return item, nil
}

// SetAvailability flips an item's availability flag.
func (s *MenuService) SetAvailability(ctx context.Context, id int64, availability domain.Availability) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE menu_items
		SET availability = $2
		WHERE id = $1`, id, availability)
	if err != nil {
		return domain.Internal(err, "menu.set_availability", "failed to update availability")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("menu.set_availability", "menu item", strconv.FormatInt(id, 10))
	}
	return nil
}

// loadGroups loads the modifier groups and options for one item.
func (s *MenuService) loadGroups(ctx context.Context, itemID int64) ([]domain.ModifierGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, required, cardinality
		FROM modifier_groups
		WHERE menu_item_id = $1
		ORDER BY sort_order, id`, itemID)
	if err != nil {
		return nil, domain.Internal(err, "menu.load_groups", "failed to load modifier groups")
	}
	defer rows.Close()

	var groups []domain.ModifierGroup
	for rows.Next() {
		var g domain.ModifierGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Required, &g.Cardinality); err != nil {
			return nil, domain.Internal(err, "menu.load_groups", "failed to scan modifier group")
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "menu.load_groups", "failed to read modifier groups")
	}

	for i := range groups {
		options, err := s.loadOptions(ctx, itemID, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Options = options
	}

	return groups, nil
}

func (s *MenuService) loadOptions(ctx context.Context, itemID int64, groupID string) ([]domain.ModifierOption, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price_delta
		FROM modifier_options
		WHERE menu_item_id = $1 AND group_id = $2
		ORDER BY sort_order, id`, itemID, groupID)
	if err != nil {
		return nil, domain.Internal(err, "menu.load_options", "failed to load modifier options")
	}
	defer rows.Close()

	var options []domain.ModifierOption
	for rows.Next() {
		var o domain.ModifierOption
		if err := rows.Scan(&o.ID, &o.Name, &o.PriceDelta); err != nil {
			return nil, domain.Internal(err, "menu.load_options", "failed to scan modifier option")
		}
		options = append(options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "menu.load_options", "failed to read modifier options")
	}

	return options, nil
}

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Description,
		&item.BasePrice,
		&item.Availability,
		&item.ChefRecommended,
		&item.ImageURLs,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

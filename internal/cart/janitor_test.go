package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/menu"
	"github.com/mesa-pos/mesa/internal/pricing"
	"github.com/mesa-pos/mesa/internal/tax"
)

func TestPruneIdle(t *testing.T) {
	svc := NewService(
		menu.NewStaticService(menu.DefaultMenu()...),
		tax.NewNoTaxCalculator(),
		pricing.NewVoucherCatalog(pricing.DefaultVouchers()...),
		0,
	)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "stale", 2, 1, domain.SelectedModifiers{}, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "fresh", 2, 1, domain.SelectedModifiers{}, "")
	require.NoError(t, err)

	// Backdate one session past the idle cutoff.
	svc.mu.Lock()
	svc.carts["stale"].touched = time.Now().Add(-3 * time.Hour)
	svc.mu.Unlock()

	removed := svc.PruneIdle(2 * time.Hour)
	assert.Equal(t, 1, removed)

	svc.mu.Lock()
	_, staleExists := svc.carts["stale"]
	_, freshExists := svc.carts["fresh"]
	svc.mu.Unlock()
	assert.False(t, staleExists)
	assert.True(t, freshExists)

	// A pruned session simply starts over with an empty cart.
	summary, err := svc.GetCart(ctx, "stale")
	require.NoError(t, err)
	assert.Empty(t, summary.Lines)
}

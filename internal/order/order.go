package order

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/events"
	"github.com/mesa-pos/mesa/internal/orderapi"
	"github.com/mesa-pos/mesa/internal/telemetry"
)

// Service turns a session's cart into a kitchen backend order.
type Service struct {
	cart      domain.CartService
	tables    domain.TableService
	submitter orderapi.Submitter
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	stats     *telemetry.DashboardStats
	validate  *validator.Validate
	logger    *slog.Logger
}

// Compile-time check that Service implements domain.OrderService.
var _ domain.OrderService = (*Service)(nil)

// NewService creates the order service. Metrics, stats, and publisher are
// optional; pass nil to disable them.
func NewService(
	cart domain.CartService,
	tables domain.TableService,
	submitter orderapi.Submitter,
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	stats *telemetry.DashboardStats,
	logger *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cart:      cart,
		tables:    tables,
		submitter: submitter,
		publisher: publisher,
		metrics:   metrics,
		stats:     stats,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Submit builds the order request from the session's cart and sends it to
// the kitchen backend. Local validation failures and backend rejections both
// leave the cart untouched; only a confirmed order clears it.
func (s *Service) Submit(ctx context.Context, sessionID string, tableID int64, customerNotes string) (*domain.OrderConfirmation, error) {
	summary, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	req, err := buildRequest(summary, tableID, customerNotes)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, "order.Submit", "Order request failed validation")
	}

	confirmation, err := s.submitter.CreateOrder(ctx, req)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	// The backend has accepted the order; everything from here is
	// bookkeeping and must not fail the submission.
	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		s.logger.Error("failed to clear cart after order confirmation",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
	}

	if s.tables != nil {
		if err := s.tables.AddCharge(ctx, tableID, confirmation.TotalAmount); err != nil {
			s.logger.Error("failed to record table charge",
				slog.Int64("table_id", tableID),
				slog.String("error", err.Error()))
		}
	}

	s.publishConfirmation(ctx, tableID, req, confirmation)
	s.recordConfirmation(summary, confirmation)

	s.logger.Info("order confirmed",
		slog.Int64("order_id", confirmation.ID),
		slog.String("order_number", confirmation.OrderNumber),
		slog.Int64("table_id", tableID),
		slog.Int64("total_amount", confirmation.TotalAmount))

	return confirmation, nil
}

// buildRequest flattens the cart into the backend wire format. It never
// mutates the cart.
func buildRequest(summary *domain.CartSummary, tableID int64, customerNotes string) (*domain.OrderRequest, error) {
	if tableID <= 0 {
		return nil, domain.ErrMissingTable
	}
	if len(summary.Lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	items := make([]domain.OrderItemRequest, 0, len(summary.Lines))
	for i := range summary.Lines {
		line := &summary.Lines[i]
		items = append(items, domain.OrderItemRequest{
			MenuItemID: line.Item.ID,
			Quantity:   line.Quantity,
			Modifiers:  flattenModifiers(line),
			Notes:      line.Notes,
		})
	}

	return &domain.OrderRequest{
		TableID:       tableID,
		Items:         items,
		CustomerNotes: customerNotes,
		DiningMode:    domain.DiningInRestaurant,
	}, nil
}

// flattenModifiers converts a line's selections into (group, option, price)
// triples, resolving each option's price delta from the menu item snapshot.
// Output order is deterministic: groups then options, both sorted.
func flattenModifiers(line *domain.CartLine) []domain.OrderItemModifier {
	if len(line.Selections) == 0 {
		return nil
	}

	groupIDs := make([]string, 0, len(line.Selections))
	for groupID := range line.Selections {
		groupIDs = append(groupIDs, groupID)
	}
	sort.Strings(groupIDs)

	var modifiers []domain.OrderItemModifier
	for _, groupID := range groupIDs {
		group, ok := line.Item.Group(groupID)
		if !ok {
			continue
		}
		optionIDs := append([]string(nil), line.Selections[groupID]...)
		sort.Strings(optionIDs)
		for _, optionID := range optionIDs {
			option, ok := group.Option(optionID)
			if !ok {
				continue
			}
			modifiers = append(modifiers, domain.OrderItemModifier{
				ModifierGroupID:  groupID,
				ModifierOptionID: optionID,
				AdditionalPrice:  option.PriceDelta,
			})
		}
	}
	return modifiers
}

func (s *Service) publishConfirmation(ctx context.Context, tableID int64, req *domain.OrderRequest, confirmation *domain.OrderConfirmation) {
	itemCount := 0
	for i := range req.Items {
		itemCount += req.Items[i].Quantity
	}

	event := events.OrderCreatedEvent{
		EventID:     uuid.New().String(),
		OrderID:     confirmation.ID,
		OrderNumber: confirmation.OrderNumber,
		TableID:     tableID,
		TotalAmount: confirmation.TotalAmount,
		ItemCount:   itemCount,
		DiningMode:  string(req.DiningMode),
		Timestamp:   time.Now().UTC(),
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()))
	}
}

func (s *Service) recordConfirmation(summary *domain.CartSummary, confirmation *domain.OrderConfirmation) {
	if s.metrics != nil {
		s.metrics.OrdersSubmitted.Inc()
		s.metrics.OrderValue.Observe(float64(confirmation.TotalAmount))
		s.metrics.OrderItemCount.Observe(float64(summary.ItemCount))
	}
	if s.stats != nil {
		itemsByName := make(map[string]int, len(summary.Lines))
		for i := range summary.Lines {
			itemsByName[summary.Lines[i].Item.Name] += summary.Lines[i].Quantity
		}
		s.stats.RecordOrder(confirmation.TotalAmount, itemsByName)
	}
}

func (s *Service) recordFailure(err error) {
	if s.metrics != nil {
		s.metrics.OrdersFailed.WithLabelValues(domain.ErrorCode(err)).Inc()
	}
	if s.stats != nil {
		s.stats.RecordFailure()
	}
}

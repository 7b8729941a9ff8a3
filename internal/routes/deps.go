package routes

import (
	"github.com/mesa-pos/mesa/internal/handler"
	"github.com/mesa-pos/mesa/internal/middleware"
)

// APIDeps contains dependencies for the customer and waiter API routes.
type APIDeps struct {
	// Menu catalog
	MenuHandler *handler.MenuHandler

	// Session cart
	CartHandler *handler.CartHandler

	// Order submission
	CheckoutHandler *handler.CheckoutHandler

	// Waiter table roster and settlement
	TableHandler *handler.TableHandler

	// Business summary
	DashboardHandler *handler.DashboardHandler
}

// OpsDeps contains dependencies for operational routes.
type OpsDeps struct {
	Metrics *middleware.Metrics
}

package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/handler"
)

func TestCheckout_EndToEnd(t *testing.T) {
	ts := newTestServer(t)
	session := "checkout-session"

	// Two large Pho Bo: (100000 + 20000) * 2 = 240000.
	w := ts.do(t, http.MethodPost, "/api/cart/items", session, map[string]interface{}{
		"menu_item_id": 1,
		"quantity":     2,
		"selections":   map[string][]string{"size": {"large"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/cart/voucher", session, map[string]string{"code": "WELCOME10"})
	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeSummary(t, w)
	assert.Equal(t, int64(240_000), summary.Subtotal)
	assert.Equal(t, int64(19_200), summary.Tax)
	assert.Equal(t, int64(24_000), summary.Discount)
	assert.Equal(t, int64(235_200), summary.Total)

	w = ts.do(t, http.MethodPost, "/api/checkout", session, map[string]interface{}{
		"table_id":       5,
		"customer_notes": "no cilantro",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var confirmation domain.OrderConfirmation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&confirmation))
	assert.Equal(t, "ORD-42", confirmation.OrderNumber)

	// The backend saw the flattened wire request.
	req := ts.submitter.lastRequest
	require.NotNil(t, req)
	assert.Equal(t, int64(5), req.TableID)
	assert.Equal(t, "no cilantro", req.CustomerNotes)
	require.Len(t, req.Items, 1)
	require.Len(t, req.Items[0].Modifiers, 1)
	assert.Equal(t, "size", req.Items[0].Modifiers[0].ModifierGroupID)

	// Cart cleared after confirmation.
	w = ts.do(t, http.MethodGet, "/api/cart", session, nil)
	summary = decodeSummary(t, w)
	assert.Empty(t, summary.Lines)
}

func TestCheckout_MissingTable(t *testing.T) {
	ts := newTestServer(t)
	session := "checkout-session"

	w := ts.do(t, http.MethodPost, "/api/cart/items", session, map[string]interface{}{
		"menu_item_id": 2,
		"quantity":     1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/checkout", session, map[string]interface{}{
		"table_id": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body handler.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, domain.EINVALID, body.Error.Code)
	assert.Nil(t, ts.submitter.lastRequest, "invalid table must never reach the backend")

	// Cart untouched, customer can fix the table and retry.
	w = ts.do(t, http.MethodGet, "/api/cart", session, nil)
	summary := decodeSummary(t, w)
	assert.Len(t, summary.Lines, 1)
}

func TestCheckout_BackendDown(t *testing.T) {
	ts := newTestServer(t)
	session := "checkout-session"

	w := ts.do(t, http.MethodPost, "/api/cart/items", session, map[string]interface{}{
		"menu_item_id": 2,
		"quantity":     1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	ts.submitter.err = domain.ErrOrderBackend

	w = ts.do(t, http.MethodPost, "/api/checkout", session, map[string]interface{}{"table_id": 5})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = ts.do(t, http.MethodGet, "/api/cart", session, nil)
	summary := decodeSummary(t, w)
	assert.Len(t, summary.Lines, 1)
}

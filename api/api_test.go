package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subtrack/api"
	"github.com/dmitrymomot/subtrack/storage"
	"github.com/dmitrymomot/subtrack/subscription"
)

var today = time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, products ...string) *httptest.Server {
	t.Helper()

	store := storage.NewMemory()
	if len(products) > 0 {
		require.NoError(t, store.SaveProducts(context.Background(), products))
	}
	svc := subscription.NewService(store, subscription.WithClock(func() time.Time { return today }))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(api.Router(svc, log))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func message(t *testing.T, data []byte) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(data, &m))
	return m.Message
}

func TestIsAPIOnline(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp, data := doJSON(t, http.MethodGet, srv.URL+"/is_api_online", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"online"}`, string(data))
}

func TestAddSubscription(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		resp, data := doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name":  "acme",
			"product_name": "crm",
			"end_date":     "2026-10-01",
			"license_key":  "ABC-123",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Subscription added successfully.", message(t, data))
	})

	t.Run("duplicate pair returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		payload := map[string]any{"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01"}

		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/add_subscription", payload)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodPost, srv.URL+"/add_subscription", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("past end date returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "end_date": "2026-03-13",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/add_subscription", bytes.NewReader([]byte("{broken")))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestViewSubscriptions(t *testing.T) {
	t.Parallel()

	t.Run("empty store yields empty array", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		resp, data := doJSON(t, http.MethodGet, srv.URL+"/view_subscriptions", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("returns records with wire field names", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01",
		})

		resp, data := doJSON(t, http.MethodGet, srv.URL+"/view_subscriptions", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var subs []map[string]any
		require.NoError(t, json.Unmarshal(data, &subs))
		require.Len(t, subs, 1)
		assert.EqualValues(t, 1, subs[0]["index"])
		assert.Equal(t, "acme", subs[0]["client_name"])
		assert.Equal(t, "crm", subs[0]["product_name"])
		assert.Equal(t, "2026-10-01", subs[0]["end_date"])
		assert.NotContains(t, subs[0], "license_key")
	})
}

func TestDeleteSubscription(t *testing.T) {
	t.Parallel()

	t.Run("delete by stored index", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01",
		})

		// The wire index equals the stored index, no off-by-one adjustment.
		resp, data := doJSON(t, http.MethodPost, srv.URL+"/delete_subscription", map[string]any{"index": 1})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Subscription deleted successfully.", message(t, data))

		_, listData := doJSON(t, http.MethodGet, srv.URL+"/view_subscriptions", nil)
		assert.JSONEq(t, `[]`, string(listData))
	})

	t.Run("DELETE method also accepted", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01",
		})

		resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/delete_subscription", map[string]any{"index": 1})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown index returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/delete_subscription", map[string]any{"index": 42})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRenewSubscription(t *testing.T) {
	t.Parallel()

	t.Run("by index with new end date", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01",
		})

		resp, data := doJSON(t, http.MethodPost, srv.URL+"/renew_subscription", map[string]any{
			"index": 1, "new_end_date": "2027-10-01",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Subscription renewed successfully.", message(t, data))

		_, listData := doJSON(t, http.MethodGet, srv.URL+"/view_subscriptions", nil)
		var subs []map[string]any
		require.NoError(t, json.Unmarshal(listData, &subs))
		require.Len(t, subs, 1)
		assert.Equal(t, "2027-10-01", subs[0]["end_date"])
	})

	t.Run("by pair with additional days", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "crm")
		doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01",
		})

		resp, _ := doJSON(t, http.MethodPut, srv.URL+"/renew_subscription", map[string]any{
			"client_name": "acme", "product_name": "crm", "additional_days": 30,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, listData := doJSON(t, http.MethodGet, srv.URL+"/view_subscriptions", nil)
		var subs []map[string]any
		require.NoError(t, json.Unmarshal(listData, &subs))
		assert.Equal(t, "2026-10-31", subs[0]["end_date"])
	})

	t.Run("unknown target returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/renew_subscription", map[string]any{
			"index": 3, "new_end_date": "2027-10-01",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNextIndex(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "crm")

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/get_next_index", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"next_index":1}`, string(data))

	doJSON(t, http.MethodPost, srv.URL+"/add_subscription", map[string]any{
		"client_name": "acme", "product_name": "crm", "end_date": "2026-10-01",
	})

	_, data = doJSON(t, http.MethodGet, srv.URL+"/get_next_index", nil)
	assert.JSONEq(t, `{"next_index":2}`, string(data))
}

func TestProducts(t *testing.T) {
	t.Parallel()

	t.Run("add list delete", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)

		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/add_product", map[string]any{"product_name": "crm"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, data := doJSON(t, http.MethodGet, srv.URL+"/get_products", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `["crm"]`, string(data))

		resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/delete_product", map[string]any{"product_name": "crm"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, data = doJSON(t, http.MethodGet, srv.URL+"/get_products", nil)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("duplicate product returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		doJSON(t, http.MethodPost, srv.URL+"/add_product", map[string]any{"product_name": "crm"})
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/add_product", map[string]any{"product_name": "crm"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing product returns 400", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/delete_product", map[string]any{"product_name": "erp"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

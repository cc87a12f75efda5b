package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/app123/Leads", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("filterByFormula") == `{hash}="known"` {
			_, _ = w.Write([]byte(`{"records":[{"id":"rec1"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	c := NewClient("key", "app123", srv.URL)

	exists, err := c.RecordExists(context.Background(), "Leads", "known")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.RecordExists(context.Background(), "Leads", "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateRecord(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"records":[{"id":"rec1"}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", "app123", srv.URL)
	err := c.CreateRecord(context.Background(), "Leads", map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	records, ok := got["records"].([]any)
	require.True(t, ok)
	require.Len(t, records, 1)
	fields := records[0].(map[string]any)["fields"].(map[string]any)
	assert.Equal(t, "a@x.com", fields["email"])
}

func TestAPIErrorsAreReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"type":"INVALID_VALUE_FOR_COLUMN"}}`))
	}))
	defer srv.Close()

	c := NewClient("key", "app123", srv.URL)
	err := c.CreateRecord(context.Background(), "Leads", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_VALUE_FOR_COLUMN")

	_, err = c.RecordExists(context.Background(), "Leads", "x")
	assert.Error(t, err)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Ana"}`, false},
		{"malformed", `{"name":`, true},
		{"unknown field", `{"name":"Ana","age":3}`, true},
		{"trailing object", `{"name":"Ana"}{"name":"Luis"}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSON(req, &dst)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", dst.Name)
		})
	}
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"ticketId": tt.raw})
			got, err := PathInt64(req, "ticketId")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := PathInt64(httptest.NewRequest(http.MethodGet, "/", nil), "ticketId")
	assert.Error(t, err)
}

func TestRespondServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondServiceUnavailable(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), body.Error)
	assert.NotEmpty(t, body.Message)
}

func TestQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2024-05-07&state=", nil)

	date := QueryString(req, "date")
	require.NotNil(t, date)
	assert.Equal(t, "2024-05-07", *date)
	assert.Nil(t, QueryString(req, "state"))
	assert.Nil(t, QueryString(req, "channel"))
}

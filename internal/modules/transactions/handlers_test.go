package transactions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, ctx))
}

func TestHandleCreate(t *testing.T) {
	handler := NewHandler(NewRepository(setupTestDB(t), zerolog.Nop()), zerolog.Nop())

	body := `{"user_id": 42, "date": "2024-01-05", "amount": -120.5, "description": "groceries"}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created domain.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, -120.5, created.Amount)
}

func TestHandleCreate_Validation(t *testing.T) {
	handler := NewHandler(NewRepository(setupTestDB(t), zerolog.Nop()), zerolog.Nop())

	tests := []struct {
		name string
		body string
	}{
		{"missing user", `{"date": "2024-01-05", "amount": 10}`},
		{"bad date", `{"user_id": 1, "date": "05/01/2024", "amount": 10}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/transactions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.HandleCreate(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleGetByUser(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	handler := NewHandler(repo, zerolog.Nop())

	_, err := repo.Create(&domain.Transaction{UserID: 9, Date: "2024-01-01", Amount: 500})
	require.NoError(t, err)

	req := withURLParam(httptest.NewRequest("GET", "/users/9/transactions", nil), "userID", "9")
	w := httptest.NewRecorder()
	handler.HandleGetByUser(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var txs []domain.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&txs))
	assert.Len(t, txs, 1)
}

func TestHandleGetByUser_EmptyIsEmptyArray(t *testing.T) {
	handler := NewHandler(NewRepository(setupTestDB(t), zerolog.Nop()), zerolog.Nop())

	req := withURLParam(httptest.NewRequest("GET", "/users/5/transactions", nil), "userID", "5")
	w := httptest.NewRecorder()
	handler.HandleGetByUser(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactPayload struct {
	Name  string `json:"name" label:"Name" validate:"required,max=10"`
	Email string `json:"email" label:"Email" validate:"required,emailaddr"`
	Phone string `json:"phoneNumber" label:"Phone number" validate:"required,phone"`
}

func (p *contactPayload) Normalize() {
	Trim(&p.Name, &p.Email, &p.Phone)
}

type linePayload struct {
	ProductID *int64 `json:"productId" label:"Product" validate:"required"`
	Quantity  *int   `json:"quantity" label:"Quantity" validate:"required,min=1"`
}

type basketPayload struct {
	Lines []linePayload `json:"orderItems" validate:"required,dive"`
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	out, ok := typed.Details().(map[string]string)
	require.True(t, ok, "details should be a field map, got %T", typed.Details())
	return out
}

func TestDecodeJSONBodyNormalizesAndAccepts(t *testing.T) {
	var p contactPayload
	err := DecodeJSONBody(newRequest(`{"name":"  Ana  ","email":"ana@example.com","phoneNumber":"+5511999999999"}`), &p)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
}

func TestDecodeJSONBodyFieldMessages(t *testing.T) {
	var p contactPayload
	err := DecodeJSONBody(newRequest(`{"name":"   ","email":"not-an-email","phoneNumber":"0123"}`), &p)

	got := details(t, err)
	assert.Equal(t, "Validation error", pkgerrors.As(err).Message())
	assert.Equal(t, "Name is required", got["name"])
	assert.Equal(t, "Email should be valid", got["email"])
	assert.Equal(t, "Phone number should be valid", got["phoneNumber"])
}

func TestDecodeJSONBodyMaxLength(t *testing.T) {
	var p contactPayload
	err := DecodeJSONBody(newRequest(`{"name":"abcdefghijk","email":"a@b.c","phoneNumber":"+123"}`), &p)
	assert.Equal(t, "Name must be at most 10 characters", details(t, err)["name"])
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var p contactPayload
	err := DecodeJSONBody(newRequest(`{"name":"Ana","nickname":"x"}`), &p)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "invalid request body", typed.Message())
}

func TestDecodeJSONBodyNestedPaths(t *testing.T) {
	var p basketPayload
	err := DecodeJSONBody(newRequest(`{"orderItems":[{"productId":1,"quantity":0},{"quantity":2}]}`), &p)

	got := details(t, err)
	assert.Equal(t, "Quantity must be at least 1", got["orderItems[0].quantity"])
	assert.Equal(t, "Product is required", got["orderItems[1].productId"])
}

func TestDecodeJSONBodyEmptyListPasses(t *testing.T) {
	var p basketPayload
	require.NoError(t, DecodeJSONBody(newRequest(`{"orderItems":[]}`), &p))

	err := DecodeJSONBody(newRequest(`{}`), &basketPayload{})
	assert.Equal(t, "orderItems is required", details(t, err)["orderItems"])
}

func TestParseID(t *testing.T) {
	withParam := func(v string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", v)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := ParseID(withParam("42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(withParam(raw), "id")
		assert.Equal(t, "must be a positive integer", details(t, err)["id"], "raw=%q", raw)
	}
}

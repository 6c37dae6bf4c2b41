package apperror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludora/content-service/pkg/logger"
)

func serve(t *testing.T, method string, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(logger.Discard())(err, c)

	if rec.Body.Len() == 0 {
		return rec, nil
	}
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp["error"].(map[string]any)
}

func TestHTTPErrorHandler_AppErrorWithDetails(t *testing.T) {
	err := ErrProtectedReferences.WithDetails(map[string]any{"references": 2})

	rec, body := serve(t, http.MethodDelete, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "protected_references", body["code"])
	assert.Equal(t, float64(2), body["details"].(map[string]any)["references"])
}

func TestHTTPErrorHandler_WrappedAppError(t *testing.T) {
	rec, body := serve(t, http.MethodGet, fmt.Errorf("handler: %w", NewBadRequest("invalid type")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid type", body["message"])
}

func TestHTTPErrorHandler_EchoStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusNotFound, "not_found"},
		{http.StatusBadRequest, "bad_request"},
		{http.StatusConflict, "conflict"},
		{http.StatusUnprocessableEntity, "validation_error"},
		{http.StatusTeapot, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec, body := serve(t, http.MethodGet, echo.NewHTTPError(tt.status, "msg"))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, "msg", body["message"])
		})
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, body := serve(t, http.MethodGet, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", body["code"])
}

func TestHTTPErrorHandler_HeadRequest(t *testing.T) {
	rec, body := serve(t, http.MethodHead, ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, body)
}

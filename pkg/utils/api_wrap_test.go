package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("lookup: %w", ErrPlaceNotFound), code: http.StatusNotFound},
		{err: fmt.Errorf("%w: missing name", ErrMalformedPlace), code: http.StatusUnprocessableEntity},
		{err: ErrInvalidLocation, code: http.StatusBadRequest},
		{err: ErrInvalidRequest, code: http.StatusBadRequest},
		{err: fmt.Errorf("%w: REQUEST_DENIED", ErrUpstream), code: http.StatusBadGateway},
		{err: ErrDatabaseError, code: http.StatusInternalServerError},
		{err: fmt.Errorf("something else"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, "trace-1", resp.TraceID)
		})
	}
}

func TestRespondSuccess_WithoutTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, map[string]int{"n": 1}, "ok")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.TraceID)
}

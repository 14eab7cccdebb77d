package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/kit-service/internal/domain/dto"
)

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		keys       map[string]bool
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"no keys configured", nil, "", http.StatusOK, ""},
		{"valid key", map[string]bool{"k1": true, "k2": true}, "k2", http.StatusOK, ""},
		{"missing key", map[string]bool{"k1": true}, "", http.StatusUnauthorized, "API key is required"},
		{"wrong key", map[string]bool{"k1": true}, "k3", http.StatusUnauthorized, "Invalid API key"},
		{"disabled key", map[string]bool{"k1": false}, "k1", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(APIKeyAuth(tt.keys))
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error)
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

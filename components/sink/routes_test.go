package sink_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formsteps/components/sink"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	assert.Equal(t, "/webhook/closed-deal", sink.MountPath(""))
	assert.Equal(t, "/dev/webhook/closed-deal", sink.MountPath("dev"))
	assert.Equal(t, "/dev/hooks/in", sink.MountPath("/dev/", sink.WithRoutePath("hooks/in")))
}

func TestRegisterRoutes_ServeMuxAndChi(t *testing.T) {
	for name, mux := range map[string]interface {
		sink.Mux
		http.Handler
	}{
		"servemux": http.NewServeMux(),
		"chi":      chi.NewRouter(),
	} {
		t.Run(name, func(t *testing.T) {
			c := sink.New()
			pattern, err := c.RegisterRoutes(mux, "/dev")
			require.NoError(t, err)
			assert.Equal(t, "/dev/webhook/closed-deal", pattern)

			req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(`{"a":"b"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, c.Receipts(), 1)
		})
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	_, err := sink.RegisterRoutes(nil, "/")
	assert.Error(t, err)
}

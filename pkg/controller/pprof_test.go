package controller_test

import (
	"net/http"
	"net/http/httptest"
	"targets/pkg/controller"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPprofMux(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "index", path: "/debug/pprof/", status: http.StatusOK},
		{name: "cmdline", path: "/debug/pprof/cmdline", status: http.StatusOK},
		{name: "named profile", path: "/debug/pprof/goroutine?debug=1", status: http.StatusOK},
		{name: "unknown profile", path: "/debug/pprof/nope", status: http.StatusNotFound},
	}

	mux := controller.PprofMux()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://pprof.local"+tt.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			res := rec.Result()
			require.Equal(t, tt.status, res.StatusCode)
			require.NotEmpty(t, res.Header.Get("Content-Type"))
		})
	}
}

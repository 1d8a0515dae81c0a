package api_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"targets/internal/api"
	"targets/internal/api/handler/v1handler"
	"targets/internal/distributor"
	"targets/pkg/domain"
	"targets/pkg/metrics"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const body = `{"start":"2024-01-01","end":"2024-03-31","target":5220,"excludedWeekdays":["friday","sunday"]}`

func newTestServer(t *testing.T, opts api.Options) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	rec, err := metrics.NewRecorder(mp.Meter(metrics.MeterName))
	require.NoError(t, err)

	srv, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Distributor:     distributor.New(distributor.Options{}, rec),
			DefaultExcluded: domain.MustExclusionSet(domain.Friday),
		},
		Gatherer: reg,
	}, opts)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func post(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url+"/v1/distributions", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })

	return res
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	res, err := http.Get(url) //nolint: noctx
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(b)
}

func TestServer_Distribute(t *testing.T) {
	ts := newTestServer(t, api.Options{RequestTimeout: 5 * time.Second})

	res := post(t, ts.URL, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	var out struct {
		Counted []int   `json:"daysExcludingSpecified"`
		Total   float64 `json:"totalTarget"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	require.Equal(t, []int{23, 21, 21}, out.Counted)
	require.Equal(t, 1305.0, out.Total)

	// the call above is visible on the metrics endpoint
	metricsRes, text := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, metricsRes.StatusCode)
	require.Contains(t, text, "distributions_total")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, api.Options{})

	res, _ := get(t, ts.URL+"/v1/distributions")
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestServer_Specs(t *testing.T) {
	ts := newTestServer(t, api.Options{})

	res, text := get(t, ts.URL+"/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, text, "/distributions:")

	res, _ = get(t, ts.URL+"/v1/docs/")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_BearerAuth(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	ts := newTestServer(t, api.Options{SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: pub}})

	require.Equal(t, http.StatusUnauthorized, post(t, ts.URL, "").StatusCode)
	require.Equal(t, http.StatusUnauthorized, post(t, ts.URL, "not-a-token").StatusCode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "planner-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, post(t, ts.URL, token).StatusCode)

	// docs and metrics stay public
	res, _ := get(t, ts.URL+"/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_InvalidKey(t *testing.T) {
	_, err := api.NewServer(api.Deps{}, api.Options{SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: "junk"}})
	require.Error(t, err)
}

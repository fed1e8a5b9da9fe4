package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/scorer"
)

func testConfig() *config.Config {
	return &config.Config{
		Site:      config.SiteConfig{URL: "https://farm.test", Name: "Test Farms"},
		MLS:       config.MLSConfig{APIURL: "https://mls.invalid", PageSize: 100, State: "NC"},
		WordPress: config.WordPressConfig{PageSize: 100},
		Scorer:    scorer.DefaultScorerConfig(),
		Server: config.ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"https://farm.test"},
			FormRatePerMin: 600,
			FormBurst:      10,
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
}

func testRouter(t *testing.T, c *config.Config) http.Handler {
	t.Helper()
	a, err := newApp(c)
	require.NoError(t, err)
	return newRouter(a)
}

func do(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, stringsReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

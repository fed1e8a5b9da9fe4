package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chfrealty/horsefarm/internal/config"
)

type crmStub struct {
	srv  *httptest.Server
	hits atomic.Int32
	last atomic.Value
}

func newCRM(t *testing.T, status int) *crmStub {
	t.Helper()
	s := &crmStub{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		b, _ := io.ReadAll(r.Body)
		s.last.Store(b)
		w.WriteHeader(status)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *crmStub) payload(t *testing.T) map[string]any {
	t.Helper()
	raw, ok := s.last.Load().([]byte)
	require.True(t, ok)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func withCRM(url string) *config.Config {
	c := testConfig()
	c.CRM.WebhookURL = url
	return c
}

const contactBody = `{"firstName":"Jane","lastName":"Rider","email":"jane@example.com","message":"Hello"}`

func TestContact_Submitted(t *testing.T) {
	crm := newCRM(t, http.StatusOK)
	h := testRouter(t, withCRM(crm.srv.URL))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", stringsReader(contactBody))
	req.Header.Set("Referer", "https://farm.test/contact")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode[map[string]any](t, rr)
	assert.Equal(t, "submitted", body["status"])
	assert.NotEmpty(t, body["submission_id"])

	m := crm.payload(t)
	assert.Equal(t, "Contact Page Form", m["formName"])
	assert.Equal(t, "https://farm.test/contact", m["pageUrl"])
	assert.Equal(t, body["submission_id"], m["submissionId"])
}

func TestContact_ValidationError(t *testing.T) {
	crm := newCRM(t, http.StatusOK)
	h := testRouter(t, withCRM(crm.srv.URL))

	rr := do(h, http.MethodPost, "/api/contact", `{"firstName":"Jane","email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decode[struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}](t, rr)
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "email", body.Fields[0].Field)
	assert.Equal(t, "message", body.Fields[1].Field)
	assert.Zero(t, crm.hits.Load())
}

func TestContact_BadJSON(t *testing.T) {
	h := testRouter(t, testConfig())
	rr := do(h, http.MethodPost, "/api/contact", `{"firstName":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestContact_WebhookFailure(t *testing.T) {
	crm := newCRM(t, http.StatusInternalServerError)
	h := testRouter(t, withCRM(crm.srv.URL))

	rr := do(h, http.MethodPost, "/api/contact", contactBody)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "try again")
	assert.EqualValues(t, 1, crm.hits.Load())
}

func TestContact_Unconfigured(t *testing.T) {
	h := testRouter(t, testConfig())
	rr := do(h, http.MethodPost, "/api/contact", contactBody)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestValuation_Submitted(t *testing.T) {
	crm := newCRM(t, http.StatusOK)
	h := testRouter(t, withCRM(crm.srv.URL))

	rr := do(h, http.MethodPost, "/api/valuation",
		`{"firstName":"Sam","email":"sam@example.com","propertyAddress":"1 Barn Rd","acreage":"12"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	m := crm.payload(t)
	assert.Equal(t, "Property Valuation Request", m["formName"])
	assert.Equal(t, "NC", m["state"])
}

func TestInquiry(t *testing.T) {
	crm := newCRM(t, http.StatusOK)
	h := testRouter(t, withCRM(crm.srv.URL))

	rr := do(h, http.MethodPost, "/api/properties/4/inquiry",
		`{"name":"Alex","email":"alex@example.com","message":"Is it available?"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	m := crm.payload(t)
	assert.Equal(t, "Property Inquiry Form", m["formName"])
	assert.Equal(t, "MLS-2024-004", m["propertyMLS"])
	assert.Equal(t, "4", m["propertyId"])

	rr = do(h, http.MethodPost, "/api/properties/nope/inquiry", `{"name":"Alex","email":"alex@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestForms_RateLimited(t *testing.T) {
	crm := newCRM(t, http.StatusOK)
	c := withCRM(crm.srv.URL)
	c.Server.FormRatePerMin = 1
	c.Server.FormBurst = 2
	h := testRouter(t, c)

	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/contact", contactBody).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/contact", contactBody).Code)

	rr := do(h, http.MethodPost, "/api/valuation", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.EqualValues(t, 2, crm.hits.Load())

	// Reads are never throttled.
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/faqs", "").Code)
}

package leads

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/pkg/crm"
)

var fixedNow = time.Date(2025, 3, 4, 15, 4, 5, 0, time.FixedZone("EST", -5*3600))

func fixedID() string { return "11111111-2222-3333-4444-555555555555" }

type capture struct {
	hits atomic.Int32
	body atomic.Value
}

func webhook(t *testing.T, status int) (*httptest.Server, *capture) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits.Add(1)
		b, _ := io.ReadAll(r.Body)
		c.body.Store(b)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func (c *capture) payload(t *testing.T) map[string]any {
	t.Helper()
	raw, ok := c.body.Load().([]byte)
	require.True(t, ok, "no request captured")
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func newService(url string) *Service {
	return New(config.CRMConfig{WebhookURL: url}, WithClock(func() time.Time { return fixedNow }), WithIDs(fixedID))
}

func validContact() ContactForm {
	return ContactForm{
		Contact: Contact{FirstName: " Jane ", LastName: "Rider", Email: "jane@example.com", Phone: "704-555-0100"},
		Message: "Looking for 20 acres near Tryon.",
	}
}

func TestSubmitContact(t *testing.T) {
	t.Parallel()
	srv, c := webhook(t, http.StatusOK)

	r, err := newService(srv.URL).SubmitContact(context.Background(), validContact(), "https://site.test/contact")
	require.NoError(t, err)
	assert.Equal(t, fixedID(), r.SubmissionID)
	assert.Equal(t, fixedNow.UTC(), r.SubmittedAt)

	m := c.payload(t)
	assert.Equal(t, "Contact Page Form", m["formName"])
	assert.Equal(t, "Carolina Horse Farm Realty Website", m["formSource"])
	assert.Equal(t, fixedID(), m["submissionId"])
	assert.Equal(t, "2025-03-04T20:04:05Z", m["submittedAt"])
	assert.Equal(t, "https://site.test/contact", m["pageUrl"])
	assert.Equal(t, "Jane Rider", m["fullName"])
	assert.Equal(t, "Jane", m["firstName"])
	assert.Equal(t, "jane@example.com", m["email"])
	assert.Equal(t, "email", m["preferredContact"])
	assert.Equal(t, "Looking for 20 acres near Tryon.", m["message"])
	assert.EqualValues(t, 1, c.hits.Load())
}

func TestSubmitValuation(t *testing.T) {
	t.Parallel()
	srv, c := webhook(t, http.StatusCreated)

	f := ValuationForm{
		Contact:         Contact{FirstName: "Sam", LastName: "Hay", Email: "sam@example.com"},
		PropertyAddress: "12 Barn Rd",
		City:            "Tryon",
		Acreage:         "30",
		NumberOfStalls:  "8",
		HasArena:        "yes",
	}
	_, err := New(config.CRMConfig{WebhookURL: srv.URL, FormSource: "Test Source"}).
		SubmitValuation(context.Background(), f, "")
	require.NoError(t, err)

	m := c.payload(t)
	assert.Equal(t, "Property Valuation Request", m["formName"])
	assert.Equal(t, "Test Source", m["formSource"])
	assert.Equal(t, "NC", m["state"])
	assert.Equal(t, "12 Barn Rd", m["propertyAddress"])
	assert.Equal(t, "8", m["numberOfStalls"])
	assert.Equal(t, "Sam Hay", m["fullName"])
	assert.NotEmpty(t, m["submissionId"])
}

func TestSubmitInquiry(t *testing.T) {
	t.Parallel()
	srv, c := webhook(t, http.StatusOK)

	p := model.Property{
		ID: "4", MLSNumber: "MLS-2024-004", Title: "8-Stall Farm", Address: "1 Hunt Ln",
		City: "Tryon", State: "NC", ZipCode: "28782", Price: 1650000, Acreage: 30, PropertyType: model.TypeFarm,
	}
	_, err := newService(srv.URL).SubmitInquiry(context.Background(),
		InquiryForm{Name: "Alex", Email: "alex@example.com", Message: "Still available?", PropertyID: "4"}, p, "")
	require.NoError(t, err)

	m := c.payload(t)
	assert.Equal(t, "Property Inquiry Form", m["formName"])
	assert.Equal(t, "Alex", m["fullName"])
	assert.Equal(t, "MLS-2024-004", m["propertyMLS"])
	assert.Equal(t, "1 Hunt Ln, Tryon, NC 28782", m["propertyAddress"])
	assert.EqualValues(t, 1650000, m["propertyPrice"])
	assert.Equal(t, "farm", m["propertyType"])
}

func TestValidation(t *testing.T) {
	t.Parallel()
	srv, c := webhook(t, http.StatusOK)
	svc := newService(srv.URL)

	tests := []struct {
		name   string
		mutate func(*ContactForm)
		fields []string
	}{
		{"missing email", func(f *ContactForm) { f.Email = "  " }, []string{"email"}},
		{"bad email", func(f *ContactForm) { f.Email = "not-an-email" }, []string{"email"}},
		{"display name rejected", func(f *ContactForm) { f.Email = "Jane <jane@example.com>" }, []string{"email"}},
		{"missing message", func(f *ContactForm) { f.Message = "" }, []string{"message"}},
		{"bad preference", func(f *ContactForm) { f.PreferredContact = "fax" }, []string{"preferredContact"}},
		{"phone preferred without phone", func(f *ContactForm) {
			f.PreferredContact = "PHONE"
			f.Phone = ""
		}, []string{"phone"}},
		{"several", func(f *ContactForm) {
			f.Email = ""
			f.Message = ""
		}, []string{"email", "message"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validContact()
			tt.mutate(&f)
			_, err := svc.SubmitContact(context.Background(), f, "")

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			var got []string
			for _, fe := range ve.Fields() {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}

	_, err := svc.SubmitValuation(context.Background(), ValuationForm{Contact: Contact{Email: "a@b.co"}}, "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "propertyAddress is required")

	_, err = svc.SubmitInquiry(context.Background(), InquiryForm{Email: "a@b.co"}, model.Property{}, "")
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields(), 2)

	assert.Zero(t, c.hits.Load())
}

func TestWebhookFailure(t *testing.T) {
	t.Parallel()
	srv, c := webhook(t, http.StatusInternalServerError)

	_, err := newService(srv.URL).SubmitContact(context.Background(), validContact(), "")
	require.Error(t, err)

	var se *crm.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.EqualValues(t, 1, c.hits.Load(), "no retry")
}

func TestUnconfigured(t *testing.T) {
	t.Parallel()
	svc := New(config.CRMConfig{WebhookURL: "  "})
	assert.False(t, svc.Configured())

	_, err := svc.SubmitContact(context.Background(), validContact(), "")
	assert.True(t, errors.Is(err, ErrUnconfigured))

	// Validation still runs first.
	_, err = svc.SubmitContact(context.Background(), ContactForm{}, "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestContactNormalize(t *testing.T) {
	t.Parallel()
	f := ContactForm{PreferredContact: " Phone "}
	f.Normalize()
	assert.Equal(t, ContactByPhone, f.PreferredContact)

	v := ValuationForm{State: " sc "}
	v.Normalize()
	assert.Equal(t, "SC", v.State)
}

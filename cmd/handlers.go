package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/chfrealty/horsefarm/internal/content"
	"github.com/chfrealty/horsefarm/internal/filter"
	"github.com/chfrealty/horsefarm/internal/geo"
	"github.com/chfrealty/horsefarm/internal/leads"
	"github.com/chfrealty/horsefarm/internal/listings"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/sitemap"
	"github.com/chfrealty/horsefarm/internal/source"
)

const (
	originHeader = "X-Data-Origin"
	maxFormBytes = 64 << 10
	submitFailed = "We could not submit your request. Please try again or call us directly."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func setOrigin(w http.ResponseWriter, o source.Origin) {
	w.Header().Set(originHeader, string(o))
}

// intParam parses a non-negative integer query parameter, returning def when
// absent or malformed.
func intParam(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func (a *app) handleProperties(w http.ResponseWriter, r *http.Request) {
	f, key := filter.ParseQuery(r.URL.Query())
	res := a.listings.Search(r.Context(), f, key)
	setOrigin(w, res.Origin)
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": res.Value,
		"total":      len(res.Value),
		"filters":    f,
		"sort":       key,
	})
}

func (a *app) handleFeatured(w http.ResponseWriter, r *http.Request) {
	res := a.listings.Featured(r.Context(), intParam(r, "limit", 0))
	setOrigin(w, res.Origin)
	writeJSON(w, http.StatusOK, map[string]any{"properties": res.Value})
}

type facets struct {
	Cities       []string              `json:"cities"`
	PriceRange   filter.Range[int64]   `json:"price_range"`
	AcreageRange filter.Range[float64] `json:"acreage_range"`
	Types        []model.PropertyType  `json:"property_types"`
}

func (a *app) handleFacets(w http.ResponseWriter, r *http.Request) {
	all := a.listings.FetchAll(r.Context())
	setOrigin(w, all.Origin)
	writeJSON(w, http.StatusOK, facets{
		Cities:       filter.Cities(all.Value),
		PriceRange:   filter.PriceRange(all.Value),
		AcreageRange: filter.AcreageRange(all.Value),
		Types:        model.PropertyTypes(),
	})
}

func (a *app) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	f, key := filter.ParseQuery(r.URL.Query())
	res := a.listings.Search(r.Context(), f, key)

	fc, err := geo.Features(res.Value)
	if err != nil {
		zap.L().Error("geojson: build features", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not build map layer")
		return
	}
	setOrigin(w, res.Origin)
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		zap.L().Warn("encode geojson", zap.Error(err))
	}
}

func (a *app) handleProperty(w http.ResponseWriter, r *http.Request) {
	res, ok := a.listings.Get(r.Context(), chi.URLParam(r, "id"))
	setOrigin(w, res.Origin)
	if !ok {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	b := a.scorer.Breakdown(res.Value)
	writeJSON(w, http.StatusOK, map[string]any{
		"property":  res.Value,
		"score":     b.Total(),
		"breakdown": b,
	})
}

func (a *app) handleAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"areas": a.data.ServiceAreas})
}

func (a *app) handleArea(w http.ResponseWriter, r *http.Request) {
	area, ok := a.data.ServiceArea(chi.URLParam(r, "slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "area not found")
		return
	}

	res := a.listings.Search(r.Context(), model.PropertyFilters{City: model.Ptr(area.Name)}, model.SortPriceDesc)
	setOrigin(w, res.Origin)
	writeJSON(w, http.StatusOK, map[string]any{
		"area":       area,
		"properties": res.Value,
	})
}

func (a *app) handlePosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := source.Map(a.content.Posts(r.Context()), func(posts []model.BlogPost) []model.BlogPost {
		if cat := q.Get("category"); cat != "" {
			posts = content.InCategory(posts, cat)
		}
		return content.Matching(posts, q.Get("q"))
	})
	setOrigin(w, res.Origin)
	writeJSON(w, http.StatusOK, map[string]any{"posts": res.Value, "total": len(res.Value)})
}

func (a *app) handlePost(w http.ResponseWriter, r *http.Request) {
	res, ok := a.content.Post(r.Context(), chi.URLParam(r, "slug"))
	setOrigin(w, res.Origin)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": res.Value})
}

func (a *app) handleRelated(w http.ResponseWriter, r *http.Request) {
	post, ok := a.content.Post(r.Context(), chi.URLParam(r, "slug"))
	if !ok {
		setOrigin(w, post.Origin)
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	res := a.content.Related(r.Context(), post.Value, intParam(r, "limit", 0))
	setOrigin(w, source.Merge(post.Origin, res.Origin))
	writeJSON(w, http.StatusOK, map[string]any{"posts": res.Value})
}

func (a *app) handleCategories(w http.ResponseWriter, r *http.Request) {
	res := a.content.Categories(r.Context())
	setOrigin(w, res.Origin)
	writeJSON(w, http.StatusOK, map[string]any{"categories": res.Value})
}

func (a *app) handleFAQs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"faqs": a.data.FAQs})
}

func (a *app) handleAgent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.data.Agent)
}

type statusReport struct {
	MLS       listings.Status `json:"mls"`
	WordPress content.Status  `json:"wordpress"`
	CRM       struct {
		Configured bool `json:"configured"`
	} `json:"crm"`
}

func (a *app) status(ctx context.Context) statusReport {
	var st statusReport
	st.MLS = a.listings.Status(ctx)
	st.WordPress = a.content.Status(ctx)
	st.CRM.Configured = a.leads.Configured()
	return st
}

func (a *app) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.status(r.Context()))
}

func (a *app) handleSitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	origin, err := a.sitemap.Write(r.Context(), &buf)
	if err != nil {
		zap.L().Error("sitemap: render", zap.Error(err))
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	setOrigin(w, origin)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (a *app) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(sitemap.Robots(a.cfg.Site.URL)))
}

// decodeForm reads a JSON body of at most maxFormBytes into v.
func decodeForm(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// submitted maps a lead submission outcome to a response.
func submitted(w http.ResponseWriter, rec leads.Receipt, err error) {
	var ve *leads.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"status":        "submitted",
			"submission_id": rec.SubmissionID,
			"submitted_at":  rec.SubmittedAt,
		})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": ve.Fields(),
		})
	case errors.Is(err, leads.ErrUnconfigured):
		writeError(w, http.StatusServiceUnavailable, submitFailed)
	default:
		writeError(w, http.StatusBadGateway, submitFailed)
	}
}

func (a *app) handleContact(w http.ResponseWriter, r *http.Request) {
	var f leads.ContactForm
	if !decodeForm(w, r, &f) {
		return
	}
	rec, err := a.leads.SubmitContact(r.Context(), f, r.Referer())
	submitted(w, rec, err)
}

func (a *app) handleValuation(w http.ResponseWriter, r *http.Request) {
	var f leads.ValuationForm
	if !decodeForm(w, r, &f) {
		return
	}
	rec, err := a.leads.SubmitValuation(r.Context(), f, r.Referer())
	submitted(w, rec, err)
}

func (a *app) handleInquiry(w http.ResponseWriter, r *http.Request) {
	var f leads.InquiryForm
	if !decodeForm(w, r, &f) {
		return
	}
	f.PropertyID = chi.URLParam(r, "id")

	prop, ok := a.listings.Get(r.Context(), f.PropertyID)
	if !ok {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	rec, err := a.leads.SubmitInquiry(r.Context(), f, prop.Value, r.Referer())
	submitted(w, rec, err)
}

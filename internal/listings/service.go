// Package listings is the MLS listings source. It reads live listings from
// MLS Grid when configured and serves the static dataset otherwise.
package listings

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/filter"
	"github.com/chfrealty/horsefarm/internal/mockdata"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/scorer"
	"github.com/chfrealty/horsefarm/internal/source"
	"github.com/chfrealty/horsefarm/pkg/mlsgrid"
)

// Service reads listings. It holds no mutable state after construction and
// is safe for concurrent use.
type Service struct {
	cfg    config.MLSConfig
	client mlsgrid.Client
	data   *mockdata.Dataset
	scorer *scorer.Scorer
	mapper Mapper
}

// Option configures a Service.
type Option func(*Service)

// WithClient overrides the MLS Grid client. It is ignored when the
// configuration is incomplete.
func WithClient(c mlsgrid.Client) Option {
	return func(s *Service) {
		s.client = c
	}
}

// WithScorer sets the scorer used for featured selection.
func WithScorer(sc *scorer.Scorer) Option {
	return func(s *Service) {
		s.scorer = sc
	}
}

// WithClock sets the clock used to date listings with no contract date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.mapper.Now = now
	}
}

// New creates a listings source.
func New(cfg config.MLSConfig, data *mockdata.Dataset, opts ...Option) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if strings.TrimSpace(cfg.State) == "" {
		cfg.State = "NC"
	}

	s := &Service{
		cfg:    cfg,
		data:   data,
		mapper: Mapper{State: cfg.State, Agent: data.Agent, Now: time.Now},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scorer == nil {
		s.scorer = scorer.New(scorer.DefaultScorerConfig())
	}

	switch {
	case !cfg.Configured():
		s.client = nil
	case s.client == nil:
		s.client = mlsgrid.NewClient(cfg.APIKey,
			mlsgrid.WithBaseURL(cfg.APIURL),
			mlsgrid.WithTimeout(time.Duration(cfg.TimeoutSecs)*time.Second),
		)
	}
	return s
}

// Configured reports whether live reads are enabled.
func (s *Service) Configured() bool {
	return s.client != nil
}

func (s *Service) mock() []model.Property {
	return slices.Clone(s.data.Properties)
}

func (s *Service) fetch(ctx context.Context, q mlsgrid.Query) ([]model.Property, *int, error) {
	resp, err := s.client.Properties(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.Property, len(resp.Value))
	for i, l := range resp.Value {
		out[i] = s.mapper.Map(l)
	}
	return out, resp.Count, nil
}

func (s *Service) fallback(log *zap.Logger, err error) {
	kind := source.Classify(err)
	if kind == source.KindUnconfigured {
		log.Info("listings: mls grid not configured, using fallback data")
		return
	}
	log.Error("listings: mls grid request failed, using fallback data",
		zap.String("kind", string(kind)), zap.Error(err))
}

// FetchAll returns active in-state listings.
func (s *Service) FetchAll(ctx context.Context) source.Result[[]model.Property] {
	log := zap.L().With(zap.String("component", "listings"), zap.String("op", "fetch_all"))

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return source.Fallback(s.mock(), source.ErrUnconfigured)
	}

	props, _, err := s.fetch(ctx, s.allQuery())
	if err != nil {
		err = eris.Wrap(err, "listings: fetch all")
		s.fallback(log, err)
		return source.Fallback(s.mock(), err)
	}

	log.Info("listings: fetched from mls grid", zap.Int("count", len(props)))
	return source.Live(props)
}

// Get returns the listing whose ListingKey or ListingId equals id. The second
// result is false when neither the live source nor the fallback has it.
func (s *Service) Get(ctx context.Context, id string) (source.Result[model.Property], bool) {
	log := zap.L().With(zap.String("component", "listings"), zap.String("op", "get"), zap.String("id", id))

	fromMock := func(reason error) (source.Result[model.Property], bool) {
		p, ok := s.data.Property(id)
		if !ok {
			log.Info("listings: listing not found")
			return source.Fallback(model.Property{}, eris.Wrapf(source.ErrNotFound, "listings: %s", id)), false
		}
		return source.Fallback(p, reason), true
	}

	if strings.TrimSpace(id) == "" {
		return source.Fallback(model.Property{}, eris.Wrap(source.ErrNotFound, "listings: empty id")), false
	}

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return fromMock(source.ErrUnconfigured)
	}

	props, _, err := s.fetch(ctx, byIDQuery(id))
	if err != nil {
		err = eris.Wrap(err, "listings: get")
		s.fallback(log, err)
		return fromMock(err)
	}
	if len(props) == 0 {
		log.Info("listings: not found in mls grid, checking fallback data")
		return fromMock(eris.Wrapf(source.ErrEmpty, "listings: %s not in mls grid", id))
	}

	return source.Live(props[0]), true
}

// Search returns listings matching f, ordered by key. Price, acreage, city
// and type narrow the remote query; every predicate is then re-applied
// locally so live and fallback results obey the same rules.
func (s *Service) Search(ctx context.Context, f model.PropertyFilters, key model.SortKey) source.Result[[]model.Property] {
	log := zap.L().With(zap.String("component", "listings"), zap.String("op", "search"))

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return source.Fallback(filter.Search(s.mock(), f, key), source.ErrUnconfigured)
	}

	props, _, err := s.fetch(ctx, s.searchQuery(f))
	if err != nil {
		err = eris.Wrap(err, "listings: search")
		s.fallback(log, err)
		return source.Fallback(filter.Search(s.mock(), f, key), err)
	}

	out := filter.Search(props, f, key)
	log.Info("listings: search complete", zap.Int("fetched", len(props)), zap.Int("matched", len(out)))
	return source.Live(out)
}

// Featured returns the limit highest-scoring listings. limit <= 0 selects the
// configured default.
func (s *Service) Featured(ctx context.Context, limit int) source.Result[[]model.Property] {
	log := zap.L().With(zap.String("component", "listings"), zap.String("op", "featured"))
	if limit <= 0 {
		limit = s.scorer.Limit()
	}

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return source.Fallback(s.scorer.Featured(s.mock(), limit), source.ErrUnconfigured)
	}

	props, _, err := s.fetch(ctx, s.featuredQuery(limit))
	if err != nil {
		err = eris.Wrap(err, "listings: featured")
		s.fallback(log, err)
		return source.Fallback(s.scorer.Featured(s.mock(), limit), err)
	}

	return source.Live(s.scorer.Featured(props, limit))
}

// Cities lists distinct cities across all listings.
func (s *Service) Cities(ctx context.Context) source.Result[[]string] {
	return source.Map(s.FetchAll(ctx), filter.Cities)
}

// PriceRange spans the positive prices across all listings.
func (s *Service) PriceRange(ctx context.Context) source.Result[filter.Range[int64]] {
	return source.Map(s.FetchAll(ctx), filter.PriceRange)
}

// AcreageRange spans the positive acreages across all listings.
func (s *Service) AcreageRange(ctx context.Context) source.Result[filter.Range[float64]] {
	return source.Map(s.FetchAll(ctx), filter.AcreageRange)
}

// Status describes MLS Grid connectivity.
type Status struct {
	Configured    bool   `json:"configured"`
	Connected     bool   `json:"connected"`
	APIURL        string `json:"api_url"`
	HasAPIKey     bool   `json:"has_api_key"`
	Message       string `json:"message"`
	ListingsCount *int   `json:"listings_count,omitempty"`
}

// Status probes the MLS Grid API with a single-record query.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{
		Configured: s.Configured(),
		APIURL:     s.cfg.APIURL,
		HasAPIKey:  strings.TrimSpace(s.cfg.APIKey) != "",
	}
	if !st.Configured {
		st.Message = "MLS Grid API key not configured. Set HORSEFARM_MLS_API_KEY in your environment."
		return st
	}

	_, count, err := s.fetch(ctx, probeQuery())
	if err != nil {
		st.Message = "Failed to connect to MLS Grid: " + err.Error()
		return st
	}

	st.Connected = true
	st.Message = "Successfully connected to MLS Grid API"
	st.ListingsCount = count
	return st
}

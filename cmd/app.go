package main

import (
	"github.com/rotisserie/eris"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/content"
	"github.com/chfrealty/horsefarm/internal/leads"
	"github.com/chfrealty/horsefarm/internal/listings"
	"github.com/chfrealty/horsefarm/internal/mockdata"
	"github.com/chfrealty/horsefarm/internal/scorer"
	"github.com/chfrealty/horsefarm/internal/sitemap"
)

// app holds the services shared by every command.
type app struct {
	cfg      *config.Config
	data     *mockdata.Dataset
	scorer   *scorer.Scorer
	listings *listings.Service
	content  *content.Service
	leads    *leads.Service
	sitemap  *sitemap.Generator
}

func newApp(c *config.Config) (*app, error) {
	if c == nil {
		return nil, eris.New("app: nil config")
	}
	if err := scorer.ValidateConfig(c.Scorer); err != nil {
		return nil, err
	}

	data, err := mockdata.Load()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    c,
		data:   data,
		scorer: scorer.New(c.Scorer),
	}
	a.listings = listings.New(c.MLS, data, listings.WithScorer(a.scorer))
	a.content = content.New(c.WordPress, data)
	a.leads = leads.New(c.CRM)
	a.sitemap = sitemap.New(c.Site.URL, a.listings, a.content, data.ServiceAreas)
	return a, nil
}

// Package mockdata provides the static dataset served when a live source is
// unconfigured or failing.
package mockdata

import (
	_ "embed"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/chfrealty/horsefarm/internal/model"
)

//go:embed dataset.yaml
var datasetYAML []byte

//go:embed areas.yaml
var areasYAML []byte

// Dataset is the full fallback collection.
type Dataset struct {
	Agent        model.Agent         `yaml:"agent"`
	Properties   []model.Property    `yaml:"properties"`
	Posts        []model.BlogPost    `yaml:"posts"`
	Categories   []model.Category    `yaml:"categories"`
	ServiceAreas []model.ServiceArea `yaml:"service_areas"`
	FAQs         []model.FAQ         `yaml:"faqs"`
}

// Load parses the embedded dataset. Each call returns an independent copy.
func Load() (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(datasetYAML, &d); err != nil {
		return nil, eris.Wrap(err, "mockdata: parse dataset")
	}
	if err := yaml.Unmarshal(areasYAML, &d); err != nil {
		return nil, eris.Wrap(err, "mockdata: parse areas")
	}

	for i := range d.Properties {
		p := &d.Properties[i]
		if p.ListingAgent.Name == "" {
			p.ListingAgent = d.Agent
		}
		p.EquestrianAmenities = p.EquestrianAmenities.Normalize()
		if p.Images == nil {
			p.Images = []string{}
		}
		if p.Features == nil {
			p.Features = []string{}
		}
	}
	for i := range d.Posts {
		if d.Posts[i].Tags == nil {
			d.Posts[i].Tags = []string{}
		}
	}

	return &d, nil
}

// MustLoad is Load for callers that cannot proceed without the dataset.
func MustLoad() *Dataset {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// Property finds a listing by id or MLS number.
func (d *Dataset) Property(id string) (model.Property, bool) {
	i := slices.IndexFunc(d.Properties, func(p model.Property) bool {
		return p.ID == id || p.MLSNumber == id
	})
	if i < 0 {
		return model.Property{}, false
	}
	return d.Properties[i], true
}

// Post finds a blog post by slug.
func (d *Dataset) Post(slug string) (model.BlogPost, bool) {
	i := slices.IndexFunc(d.Posts, func(p model.BlogPost) bool { return p.Slug == slug })
	if i < 0 {
		return model.BlogPost{}, false
	}
	return d.Posts[i], true
}

// ServiceArea finds a service area by slug, ignoring case.
func (d *Dataset) ServiceArea(slug string) (model.ServiceArea, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	i := slices.IndexFunc(d.ServiceAreas, func(a model.ServiceArea) bool { return a.Slug == slug })
	if i < 0 {
		return model.ServiceArea{}, false
	}
	return d.ServiceAreas[i], true
}

// Package sitemap renders sitemap.xml and robots.txt for the public site.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/source"
)

// Change frequencies.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// PropertySource lists every listing.
type PropertySource interface {
	FetchAll(ctx context.Context) source.Result[[]model.Property]
}

// PostSource lists every blog post.
type PostSource interface {
	Posts(ctx context.Context) source.Result[[]model.BlogPost]
}

// URL is one sitemap entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type page struct {
	path     string
	freq     string
	priority float64
}

var staticPages = []page{
	{"", Weekly, 1.0},
	{"/properties", Daily, 0.9},
	{"/areas", Monthly, 0.8},
	{"/about", Monthly, 0.8},
	{"/contact", Monthly, 0.8},
	{"/estimate", Monthly, 0.8},
	{"/blog", Weekly, 0.7},
}

// Generator builds the sitemap from the listing and blog sources.
type Generator struct {
	siteURL string
	props   PropertySource
	posts   PostSource
	areas   []model.ServiceArea
	now     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for static page lastmod.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator rooted at siteURL.
func New(siteURL string, props PropertySource, posts PostSource, areas []model.ServiceArea, opts ...Option) *Generator {
	g := &Generator{
		siteURL: strings.TrimRight(siteURL, "/"),
		props:   props,
		posts:   posts,
		areas:   areas,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build collects every entry. Listings and posts are read concurrently; the
// returned origin is a fallback if either source fell back.
func (g *Generator) Build(ctx context.Context) (URLSet, source.Origin) {
	var (
		props source.Result[[]model.Property]
		posts source.Result[[]model.BlogPost]
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		props = g.props.FetchAll(gctx)
		return nil
	})
	eg.Go(func() error {
		posts = g.posts.Posts(gctx)
		return nil
	})
	_ = eg.Wait() // sources never fail; they fall back

	today := g.now().UTC().Format(time.DateOnly)
	set := URLSet{XMLNS: xmlns}

	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{Loc: g.siteURL + p.path, LastMod: today, ChangeFreq: p.freq, Priority: p.priority})
	}
	for _, p := range props.Value {
		u := URL{Loc: g.loc("properties", p.ID), ChangeFreq: Weekly, Priority: 0.8}
		if t := p.ListedAt(); !t.IsZero() {
			u.LastMod = t.Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}
	for _, a := range g.areas {
		set.URLs = append(set.URLs, URL{Loc: g.loc("areas", a.Slug), ChangeFreq: Monthly, Priority: 0.7})
	}
	for _, p := range posts.Value {
		u := URL{Loc: g.loc("blog", p.Slug), ChangeFreq: Monthly, Priority: 0.6}
		if !p.PublishedAt.IsZero() {
			u.LastMod = p.PublishedAt.UTC().Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}

	origin := source.Merge(props.Origin, posts.Origin)
	zap.L().Debug("sitemap: built",
		zap.Int("urls", len(set.URLs)),
		zap.String("origin", string(origin)),
	)
	return set, origin
}

func (g *Generator) loc(section, id string) string {
	return fmt.Sprintf("%s/%s/%s", g.siteURL, section, url.PathEscape(id))
}

// Write renders the sitemap document to w.
func (g *Generator) Write(ctx context.Context, w io.Writer) (source.Origin, error) {
	set, origin := g.Build(ctx)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return origin, eris.Wrap(err, "sitemap: write header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return origin, eris.Wrap(err, "sitemap: encode")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return origin, eris.Wrap(err, "sitemap: write trailer")
	}
	return origin, nil
}

// Robots renders robots.txt pointing crawlers at the sitemap.
func Robots(siteURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + strings.TrimRight(siteURL, "/") + "/sitemap.xml\n")
	return b.String()
}

package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/source"
)

type fakeProps struct {
	res     source.Result[[]model.Property]
	started chan struct{}
	release chan struct{}
}

func (f *fakeProps) FetchAll(ctx context.Context) source.Result[[]model.Property] {
	if f.started != nil {
		close(f.started)
		select {
		case <-f.release:
		case <-ctx.Done():
		}
	}
	return f.res
}

type fakePosts struct {
	res  source.Result[[]model.BlogPost]
	once sync.Once
	hook func()
}

func (f *fakePosts) Posts(context.Context) source.Result[[]model.BlogPost] {
	if f.hook != nil {
		f.once.Do(f.hook)
	}
	return f.res
}

var now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func TestBuild(t *testing.T) {
	t.Parallel()
	props := &fakeProps{res: source.Live([]model.Property{
		{ID: "1", ListDate: "2024-10-15"},
		{ID: "MLS 9", ListDate: "bad"},
	})}
	posts := &fakePosts{res: source.Live([]model.BlogPost{
		{Slug: "hello", PublishedAt: time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC)},
	})}
	areas := []model.ServiceArea{{Slug: "tryon"}}

	set, origin := New("https://farm.test/", props, posts, areas, WithClock(now)).Build(context.Background())
	assert.Equal(t, source.OriginLive, origin)
	require.Len(t, set.URLs, 7+2+1+1)

	assert.Equal(t, URL{Loc: "https://farm.test", LastMod: "2025-06-01", ChangeFreq: Weekly, Priority: 1.0}, set.URLs[0])
	assert.Equal(t, "https://farm.test/properties", set.URLs[1].Loc)
	assert.Equal(t, Daily, set.URLs[1].ChangeFreq)

	assert.Equal(t, URL{Loc: "https://farm.test/properties/1", LastMod: "2024-10-15", ChangeFreq: Weekly, Priority: 0.8}, set.URLs[7])
	assert.Equal(t, "https://farm.test/properties/MLS%209", set.URLs[8].Loc)
	assert.Empty(t, set.URLs[8].LastMod)
	assert.Equal(t, "https://farm.test/areas/tryon", set.URLs[9].Loc)
	assert.Equal(t, URL{Loc: "https://farm.test/blog/hello", LastMod: "2024-11-15", ChangeFreq: Monthly, Priority: 0.6}, set.URLs[10])
}

func TestBuild_FallbackOrigin(t *testing.T) {
	t.Parallel()
	props := &fakeProps{res: source.Live([]model.Property{})}
	posts := &fakePosts{res: source.Fallback([]model.BlogPost{{Slug: "mock"}}, eris.New("down"))}

	set, origin := New("https://farm.test", props, posts, nil).Build(context.Background())
	assert.Equal(t, source.OriginFallback, origin)
	assert.Equal(t, "https://farm.test/blog/mock", set.URLs[len(set.URLs)-1].Loc)
}

func TestBuild_ReadsConcurrently(t *testing.T) {
	t.Parallel()
	// The listing read blocks until the post read has started, which only
	// completes if both run at once.
	props := &fakeProps{res: source.Live([]model.Property{}), started: make(chan struct{}), release: make(chan struct{})}
	posts := &fakePosts{res: source.Live([]model.BlogPost{}), hook: func() { close(props.release) }}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, origin := New("https://farm.test", props, posts, nil).Build(ctx)
	assert.Equal(t, source.OriginLive, origin)
	assert.NoError(t, ctx.Err())
}

func TestWrite(t *testing.T) {
	t.Parallel()
	props := &fakeProps{res: source.Live([]model.Property{{ID: "1", ListDate: "2024-01-02"}})}
	posts := &fakePosts{res: source.Live([]model.BlogPost{})}

	var buf bytes.Buffer
	_, err := New("https://farm.test", props, posts, nil, WithClock(now)).Write(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://farm.test/properties/1</loc>")
	assert.Contains(t, out, "<priority>0.8</priority>")

	var parsed URLSet
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	assert.Len(t, parsed.URLs, 8)
}

func TestRobots(t *testing.T) {
	t.Parallel()
	want := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: https://farm.test/sitemap.xml\n"
	assert.Equal(t, want, Robots("https://farm.test/"))
}

// Package content is the blog source. It reads posts and categories from a
// WordPress GraphQL endpoint when configured and serves the static dataset
// otherwise.
package content

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/mockdata"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/source"
	"github.com/chfrealty/horsefarm/pkg/wpgraphql"
)

// Service reads blog content and is safe for concurrent use.
type Service struct {
	cfg    config.WordPressConfig
	client wpgraphql.Client
	data   *mockdata.Dataset
}

// Option configures a Service.
type Option func(*Service)

// WithClient overrides the GraphQL client. It is ignored when no endpoint is
// configured.
func WithClient(c wpgraphql.Client) Option {
	return func(s *Service) {
		s.client = c
	}
}

// New creates a content source.
func New(cfg config.WordPressConfig, data *mockdata.Dataset, opts ...Option) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}

	s := &Service{cfg: cfg, data: data}
	for _, opt := range opts {
		opt(s)
	}

	switch {
	case !cfg.Configured():
		s.client = nil
	case s.client == nil:
		s.client = wpgraphql.NewClient(cfg.APIURL,
			wpgraphql.WithTimeout(time.Duration(cfg.TimeoutSecs)*time.Second),
		)
	}
	return s
}

// Configured reports whether live reads are enabled.
func (s *Service) Configured() bool {
	return s.client != nil
}

func (s *Service) fallback(log *zap.Logger, err error) {
	kind := source.Classify(err)
	if kind == source.KindUnconfigured {
		log.Info("content: wordpress not configured, using fallback data")
		return
	}
	log.Error("content: wordpress request failed, using fallback data",
		zap.String("kind", string(kind)), zap.Error(err))
}

// Posts returns every published post.
func (s *Service) Posts(ctx context.Context) source.Result[[]model.BlogPost] {
	log := zap.L().With(zap.String("component", "content"), zap.String("op", "posts"))

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return source.Fallback(slices.Clone(s.data.Posts), source.ErrUnconfigured)
	}

	posts, err := s.client.Posts(ctx, s.cfg.PageSize)
	if err != nil {
		err = eris.Wrap(err, "content: posts")
		s.fallback(log, err)
		return source.Fallback(slices.Clone(s.data.Posts), err)
	}

	out := make([]model.BlogPost, len(posts))
	for i, p := range posts {
		out[i] = MapPost(p)
	}
	log.Info("content: fetched posts", zap.Int("count", len(out)))
	return source.Live(out)
}

// Post returns the post with the given slug. A slug unknown to WordPress is
// looked up in the static dataset before reporting not found.
func (s *Service) Post(ctx context.Context, slug string) (source.Result[model.BlogPost], bool) {
	log := zap.L().With(zap.String("component", "content"), zap.String("op", "post"), zap.String("slug", slug))

	fromMock := func(reason error) (source.Result[model.BlogPost], bool) {
		p, ok := s.data.Post(slug)
		if !ok {
			log.Info("content: post not found")
			return source.Fallback(model.BlogPost{}, eris.Wrapf(source.ErrNotFound, "content: %s", slug)), false
		}
		return source.Fallback(p, reason), true
	}

	if strings.TrimSpace(slug) == "" {
		return source.Fallback(model.BlogPost{}, eris.Wrap(source.ErrNotFound, "content: empty slug")), false
	}

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return fromMock(source.ErrUnconfigured)
	}

	p, err := s.client.PostBySlug(ctx, slug)
	if err != nil {
		err = eris.Wrap(err, "content: post")
		s.fallback(log, err)
		return fromMock(err)
	}
	if p == nil {
		log.Warn("content: no post in wordpress, checking fallback data")
		return fromMock(eris.Wrapf(source.ErrEmpty, "content: %s not in wordpress", slug))
	}

	return source.Live(MapPost(*p)), true
}

// Search returns posts whose title, excerpt, content or any tag contains q,
// ignoring case. An empty query matches everything.
func (s *Service) Search(ctx context.Context, q string) source.Result[[]model.BlogPost] {
	return source.Map(s.Posts(ctx), func(posts []model.BlogPost) []model.BlogPost {
		return Matching(posts, q)
	})
}

// ByCategory returns posts whose category slugifies to slug.
func (s *Service) ByCategory(ctx context.Context, slug string) source.Result[[]model.BlogPost] {
	return source.Map(s.Posts(ctx), func(posts []model.BlogPost) []model.BlogPost {
		return InCategory(posts, slug)
	})
}

// Matching keeps the posts whose title, excerpt, content or any tag contains
// q, ignoring case. An empty query keeps everything.
func Matching(posts []model.BlogPost, q string) []model.BlogPost {
	needle := strings.ToLower(strings.TrimSpace(q))
	return filterPosts(posts, func(p model.BlogPost) bool { return matches(p, needle) })
}

// InCategory keeps the posts whose category slugifies to slug.
func InCategory(posts []model.BlogPost, slug string) []model.BlogPost {
	slug = strings.ToLower(strings.TrimSpace(slug))
	return filterPosts(posts, func(p model.BlogPost) bool { return Slugify(p.Category) == slug })
}

func matches(p model.BlogPost, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{p.Title, p.Excerpt, p.Content} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return slices.ContainsFunc(p.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), needle)
	})
}

// Related returns up to limit other posts ranked by shared category and tags.
// limit <= 0 selects three.
func (s *Service) Related(ctx context.Context, post model.BlogPost, limit int) source.Result[[]model.BlogPost] {
	return source.Map(s.Posts(ctx), func(posts []model.BlogPost) []model.BlogPost {
		return Related(post, posts, limit)
	})
}

// Related ranks candidates against post: ten points for the same category
// and three per shared tag. Ties keep candidate order and post itself is
// excluded by id.
func Related(post model.BlogPost, candidates []model.BlogPost, limit int) []model.BlogPost {
	if limit <= 0 {
		limit = defaultRelated
	}

	type scored struct {
		post  model.BlogPost
		score int
	}
	var ranked []scored
	for _, c := range candidates {
		if c.ID == post.ID {
			continue
		}
		score := 0
		if c.Category == post.Category {
			score += sameCategoryPts
		}
		for _, t := range c.Tags {
			if slices.Contains(post.Tags, t) {
				score += sharedTagPts
			}
		}
		ranked = append(ranked, scored{c, score})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int { return cmp.Compare(b.score, a.score) })

	out := make([]model.BlogPost, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.post)
	}
	return out
}

// Categories returns the blog categories.
func (s *Service) Categories(ctx context.Context) source.Result[[]model.Category] {
	log := zap.L().With(zap.String("component", "content"), zap.String("op", "categories"))

	if !s.Configured() {
		s.fallback(log, source.ErrUnconfigured)
		return source.Fallback(slices.Clone(s.data.Categories), source.ErrUnconfigured)
	}

	cats, err := s.client.Categories(ctx)
	if err != nil {
		err = eris.Wrap(err, "content: categories")
		s.fallback(log, err)
		return source.Fallback(slices.Clone(s.data.Categories), err)
	}

	out := make([]model.Category, len(cats))
	for i, c := range cats {
		out[i] = MapCategory(c)
	}
	return source.Live(out)
}

// Status describes WordPress connectivity.
type Status struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	APIURL     string `json:"api_url"`
	Message    string `json:"message"`
	PostsCount *int   `json:"posts_count,omitempty"`
}

// Status probes the endpoint by listing posts.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{Configured: s.Configured(), APIURL: s.cfg.APIURL}
	if !st.Configured {
		st.Message = "WordPress API URL not configured. Set HORSEFARM_WORDPRESS_API_URL in your environment."
		return st
	}

	posts, err := s.client.Posts(ctx, s.cfg.PageSize)
	if err != nil {
		st.Message = "Failed to connect to WordPress: " + err.Error()
		return st
	}

	n := len(posts)
	st.Connected = true
	st.Message = "Successfully connected to WordPress GraphQL API"
	st.PostsCount = &n
	return st
}

func filterPosts(posts []model.BlogPost, keep func(model.BlogPost) bool) []model.BlogPost {
	out := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

package content

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/pkg/wpgraphql"
)

const (
	defaultImage    = "/images/blog/default.jpg"
	defaultAvatar   = "/images/default-avatar.jpg"
	uncategorized   = "Uncategorized"
	wordsPerMinute  = 200
	wpDateLayout    = "2006-01-02T15:04:05"
	defaultRelated  = 3
	sameCategoryPts = 10
	sharedTagPts    = 3
)

// MapPost converts a WPGraphQL post into a BlogPost.
func MapPost(p wpgraphql.Post) model.BlogPost {
	bp := model.BlogPost{
		ID:            strconv.Itoa(p.DatabaseID),
		Slug:          p.Slug,
		Title:         p.Title,
		Excerpt:       collapse(StripHTML(p.Excerpt)),
		Content:       p.Content,
		FeaturedImage: defaultImage,
		Author:        model.Author{Avatar: defaultAvatar},
		Category:      uncategorized,
		Tags:          []string{},
		PublishedAt:   parseDate(p.Date),
	}

	if p.FeaturedImage != nil && p.FeaturedImage.Node.SourceURL != "" {
		bp.FeaturedImage = p.FeaturedImage.Node.SourceURL
	}
	if p.Author != nil {
		bp.Author.Name = p.Author.Node.Name
		if p.Author.Node.Avatar != nil && p.Author.Node.Avatar.URL != "" {
			bp.Author.Avatar = p.Author.Node.Avatar.URL
		}
	}
	if len(p.Categories.Edges) > 0 && p.Categories.Edges[0].Node.Name != "" {
		bp.Category = p.Categories.Edges[0].Node.Name
	}
	if p.Tags != nil {
		for _, e := range p.Tags.Edges {
			bp.Tags = append(bp.Tags, e.Node.Name)
		}
	}

	body := p.Content
	if body == "" {
		body = p.Excerpt
	}
	bp.ReadTime = ReadTime(body)
	return bp
}

// MapCategory converts a WPGraphQL category.
func MapCategory(c wpgraphql.Category) model.Category {
	out := model.Category{
		ID:          c.ID,
		DatabaseID:  c.DatabaseID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	if c.Count != nil {
		out.Count = *c.Count
	}
	return out
}

// StripHTML returns the text content of an HTML fragment with entities
// decoded. Script and style bodies are dropped and block elements become
// word breaks.
func StripHTML(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				switch {
				case tt == html.StartTagToken:
					skip++
				case tt == html.EndTagToken && skip > 0:
					skip--
				}
			}
			if !inline[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

var inline = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "em": true, "i": true,
	"mark": true, "small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "u": true,
}

var spaceRun = regexp.MustCompile(`\s+`)

// collapse squeezes whitespace runs to single spaces.
func collapse(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// ReadTime estimates minutes to read an HTML body at 200 words per minute,
// rounded up, never less than one.
func ReadTime(body string) int {
	words := len(strings.Fields(StripHTML(body)))
	n := int(math.Ceil(float64(words) / wordsPerMinute))
	return max(n, 1)
}

// Slugify lower-cases s and replaces whitespace runs with hyphens.
func Slugify(s string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, wpDateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

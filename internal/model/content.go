package model

import "time"

// Author is the inline byline of a blog post.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// BlogPost is an article rendered on the blog.
type BlogPost struct {
	ID            string    `json:"id" yaml:"id"`
	Slug          string    `json:"slug" yaml:"slug"`
	Title         string    `json:"title" yaml:"title"`
	Excerpt       string    `json:"excerpt" yaml:"excerpt"`
	Content       string    `json:"content" yaml:"content"`
	FeaturedImage string    `json:"featured_image" yaml:"featured_image"`
	Author        Author    `json:"author" yaml:"author"`
	Category      string    `json:"category" yaml:"category"`
	Tags          []string  `json:"tags" yaml:"tags"`
	PublishedAt   time.Time `json:"published_at" yaml:"published_at"`
	ReadTime      int       `json:"read_time" yaml:"read_time"` // minutes
}

// Category is a blog taxonomy term.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	DatabaseID  int    `json:"database_id" yaml:"database_id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description"`
	Count       int    `json:"count" yaml:"count"`
}

// ServiceArea is a static area guide.
type ServiceArea struct {
	Slug              string   `json:"slug" yaml:"slug"`
	Name              string   `json:"name" yaml:"name"`
	County            string   `json:"county" yaml:"county"`
	Description       string   `json:"description" yaml:"description"`
	Highlights        []string `json:"highlights" yaml:"highlights"`
	NearbyAttractions []string `json:"nearby_attractions" yaml:"nearby_attractions"`
}

// FAQ is a question shown on the home and about pages.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

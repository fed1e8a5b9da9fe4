package wpgraphql

// Post is a WPGraphQL post node.
type Post struct {
	ID            string         `json:"id"`
	DatabaseID    int            `json:"databaseId"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Date          string         `json:"date"`
	Modified      string         `json:"modified,omitempty"`
	Excerpt       string         `json:"excerpt"`
	Content       string         `json:"content,omitempty"`
	FeaturedImage *FeaturedImage `json:"featuredImage,omitempty"`
	Author        *AuthorEdge    `json:"author,omitempty"`
	Categories    CategoryEdges  `json:"categories"`
	Tags          *TagEdges      `json:"tags,omitempty"`
}

// FeaturedImage wraps the featured media node.
type FeaturedImage struct {
	Node struct {
		SourceURL string `json:"sourceUrl"`
		AltText   string `json:"altText"`
	} `json:"node"`
}

// AuthorEdge wraps the author node.
type AuthorEdge struct {
	Node struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		FirstName   string `json:"firstName,omitempty"`
		LastName    string `json:"lastName,omitempty"`
		Description string `json:"description,omitempty"`
		Avatar      *struct {
			URL string `json:"url"`
		} `json:"avatar,omitempty"`
	} `json:"node"`
}

// CategoryEdges is a category connection.
type CategoryEdges struct {
	Edges []struct {
		Node Category `json:"node"`
	} `json:"edges"`
}

// TagEdges is a tag connection.
type TagEdges struct {
	Edges []struct {
		Node Tag `json:"node"`
	} `json:"edges"`
}

// Category is a WPGraphQL category node.
type Category struct {
	ID          string `json:"id"`
	DatabaseID  int    `json:"databaseId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Count       *int   `json:"count,omitempty"`
}

// Tag is a WPGraphQL tag node.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// QueryAllPosts lists published posts.
const QueryAllPosts = `
query GetAllPosts($first: Int = 100) {
  posts(first: $first, where: { status: PUBLISH }) {
    edges {
      node {
        id
        databaseId
        title
        slug
        date
        modified
        excerpt
        content
        featuredImage { node { sourceUrl altText } }
        author { node { id name firstName lastName avatar { url } } }
        categories { edges { node { id databaseId name slug } } }
        tags { edges { node { id name slug } } }
      }
    }
  }
}`

// QueryPostBySlug fetches one post with full content.
const QueryPostBySlug = `
query GetPostBySlug($slug: ID!) {
  post(id: $slug, idType: SLUG) {
    id
    databaseId
    title
    slug
    date
    modified
    excerpt
    content
    featuredImage { node { sourceUrl altText } }
    author { node { id name firstName lastName avatar { url } description } }
    categories { edges { node { id databaseId name slug description } } }
    tags { edges { node { id name slug } } }
  }
}`

// QueryAllCategories lists categories.
const QueryAllCategories = `
query GetAllCategories {
  categories(first: 100) {
    edges {
      node {
        id
        databaseId
        name
        slug
        description
        count
      }
    }
  }
}`

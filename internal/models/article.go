package models

// Article is one schemaless document from the articles collection.
// Fields are passed through as stored; "_id" holds the ObjectID and
// "title"/"content" are what the viewer renders.
type Article map[string]any

func (a Article) Title() string {
	s, _ := a["title"].(string)
	return s
}

// Page is the envelope returned by GET /api/articles.
// NextPage and PrevPage are null at the boundaries; CurrentArticle is
// omitted when the page is past the end of the collection.
type Page struct {
	CurrentArticle Article `json:"currentArticle,omitempty"`
	CurrentPage    int     `json:"currentPage"`
	TotalPages     int64   `json:"totalPages"`
	NextPage       *int    `json:"nextPage"`
	PrevPage       *int    `json:"prevPage"`
}

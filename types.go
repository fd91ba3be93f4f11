package mdblog

// Post is a markdown file in the markdown directory together with the
// metadata derived from its filename and content.
type Post struct {
	Filename  string // "2025-01-15-hello.md"
	Slug      string // filename stem, used in URLs
	Title     string
	Date      string // YYYY-MM-DD, empty when the filename carries none
	Excerpt   string
	Truncated bool   // Excerpt was cut at excerptLimit
	Body      string // markdown without front matter
	Link      string // site-relative URL, path-escaped
}

// PostSummary is the lightweight listing entry returned by /api/posts.
type PostSummary struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Date     string `json:"date"`
}

// SaveRequest is the payload accepted by /api/save.
type SaveRequest struct {
	Name             string `json:"filename"`
	Markdown         string `json:"markdown"`
	HTML             string `json:"html"`
	ExistingFilename string `json:"existingFilename"`
}

// SaveResult reports where a saved post was written.
type SaveResult struct {
	Filename     string
	MarkdownPath string
	HTMLPath     string
}

// Image is an uploaded image stored under the static uploads directory.
type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
}

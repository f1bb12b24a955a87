package model

// CreatePostDTO carries the caller-supplied fields of a new post. The author
// is bound server-side to the authenticated caller, never taken from input.
type CreatePostDTO struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImageURL   string   `json:"image_url"`
	SourceURL  *string  `json:"source_url,omitempty"`
	Category   Category `json:"category"`
	PostType   PostType `json:"post_type"`
	TimeToRead *int32   `json:"time_to_read,omitempty"`
}

package model

// UpdatePostDTO is a full-record replacement: every stored field takes the
// value given here, so an omitted optional field clears the old value.
type UpdatePostDTO struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImageURL   string   `json:"image_url"`
	SourceURL  *string  `json:"source_url,omitempty"`
	Category   Category `json:"category"`
	PostType   PostType `json:"post_type"`
	TimeToRead *int32   `json:"time_to_read,omitempty"`
}

package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID         string             `json:"id"`
	AuthorID   string             `json:"author_id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	ImageURL   string             `json:"image_url"`
	SourceURL  *string            `json:"source_url,omitempty"`
	Category   Category           `json:"category"`
	PostType   PostType           `json:"post_type"`
	TimeToRead *int32             `json:"time_to_read,omitempty"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

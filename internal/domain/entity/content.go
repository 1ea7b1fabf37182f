package entity

import (
	"time"
)

type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Priority int    `json:"priority"`
	IsActive bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

type HomepageSection struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	TitleEN    string   `json:"title_en,omitempty"`
	Kind       string   `json:"kind,omitempty"` // featured, category, manual
	ProductIDs []string `json:"product_ids,omitempty"`
	Order      int      `json:"order"`
	IsActive   bool     `json:"is_active"`
}

type Page struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Order       int       `json:"order"`
	IsPublished bool      `json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FAQ struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"is_published"`
}

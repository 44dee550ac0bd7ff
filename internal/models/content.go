package models

// MenuItem is one dish on the public menu.
type MenuItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	DietaryTags []string `json:"dietary_tags,omitempty" yaml:"dietary_tags"`
	Featured    bool     `json:"featured,omitempty" yaml:"featured"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"image_url"`
}

// Testimonial is a guest review shown on the public site.
type Testimonial struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Rating int    `json:"rating" yaml:"rating"`
	Quote  string `json:"quote" yaml:"quote"`
	Date   string `json:"date,omitempty" yaml:"date"`
}

// Restaurant is the public profile served to the marketing pages.
type Restaurant struct {
	Name        string            `json:"name" yaml:"name"`
	Tagline     string            `json:"tagline" yaml:"tagline"`
	Description string            `json:"description" yaml:"description"`
	Address     string            `json:"address" yaml:"address"`
	Phone       string            `json:"phone" yaml:"phone"`
	Email       string            `json:"email" yaml:"email"`
	Hours       map[string]string `json:"opening_hours" yaml:"opening_hours"`
	TotalCovers int               `json:"total_covers" yaml:"total_covers"`
}

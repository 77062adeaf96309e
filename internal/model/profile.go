package model

// Profile describes the portfolio owner.
type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Headline string `json:"headline" yaml:"headline"`
	About    string `json:"about" yaml:"about"`
	Email    string `json:"email" yaml:"email" validate:"omitempty,email"`
	Links    []Link `json:"links" yaml:"links" validate:"dive"`
}

// Link is a labelled external link shown on the contact page.
type Link struct {
	Label string `json:"label" yaml:"label" validate:"required"`
	URL   string `json:"url" yaml:"url" validate:"required,url"`
}

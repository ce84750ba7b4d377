package model

// Citation is a markdown inline link found in a draft
type Citation struct {
	Text string `json:"text"` // Link anchor text
	URL  string `json:"url"`
}

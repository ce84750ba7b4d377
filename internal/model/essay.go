package model

// UntitledEssay is used when an essay has no H1 heading
const UntitledEssay = "Untitled Essay"

// MaxKeyPoints bounds the key points kept from an essay
const MaxKeyPoints = 5

// Essay is an essay parsed once from its raw markdown
type Essay struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Hook      string   `json:"hook"`       // First non-heading paragraph
	KeyPoints []string `json:"key_points"` // Bullet items, first MaxKeyPoints only
	WordCount int      `json:"word_count"`
}

// Thread is an ordered sequence of short posts derived from one essay
type Thread []string

package models

// Word is a review vocabulary entry. Mastery is a static percentage used for
// ordering and display only.
type Word struct {
	ID           string `json:"id" yaml:"id"`
	Nahuatl      string `json:"nahuatl" yaml:"nahuatl"`
	Translation  string `json:"translation" yaml:"translation"`
	Mastery      int    `json:"mastery" yaml:"mastery"`
	LastReviewed string `json:"last_reviewed,omitempty" yaml:"last_reviewed,omitempty"`
	TimesSeen    int    `json:"times_seen" yaml:"times_seen"`
	TimesMissed  int    `json:"times_missed" yaml:"times_missed"`
	Recent       bool   `json:"recent" yaml:"recent"`
	AudioRef     string `json:"audio_ref,omitempty" yaml:"audio,omitempty"`
}

// Mastered is the display threshold for the check mark.
func (w Word) Mastered() bool {
	return w.Mastery >= 80
}

type WordTab string

const (
	WordTabWeak   WordTab = "weak"
	WordTabRecent WordTab = "recent"
)

// ParseWordTab maps a query value to a tab, defaulting to weak.
func ParseWordTab(s string) WordTab {
	if WordTab(s) == WordTabRecent {
		return WordTabRecent
	}
	return WordTabWeak
}

type WordFilter struct {
	Tab   WordTab
	Limit int
}

// AverageMastery returns the rounded mean mastery, 0 for no words.
func AverageMastery(words []Word) int {
	if len(words) == 0 {
		return 0
	}
	sum := 0
	for _, w := range words {
		sum += w.Mastery
	}
	return int(float64(sum)/float64(len(words)) + 0.5)
}

package models

type Badge struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Earned      bool   `json:"earned" yaml:"earned"`
}

// LearnerStats are the static demo numbers shown on Home and Profile.
type LearnerStats struct {
	TotalXP          int     `json:"total_xp" yaml:"total_xp"`
	XPForNextLevel   int     `json:"xp_for_next_level" yaml:"xp_for_next_level"`
	Level            int     `json:"level" yaml:"level"`
	WordsLearned     int     `json:"words_learned" yaml:"words_learned"`
	LessonsCompleted int     `json:"lessons_completed" yaml:"lessons_completed"`
	CurrentStreak    int     `json:"current_streak" yaml:"current_streak"`
	LongestStreak    int     `json:"longest_streak" yaml:"longest_streak"`
	Hearts           int     `json:"hearts" yaml:"hearts"`
	Badges           []Badge `json:"badges" yaml:"badges"`
}

// LevelProgress is the percentage of the current level reached, capped at 100.
func (s LearnerStats) LevelProgress() int {
	if s.XPForNextLevel <= 0 {
		return 0
	}
	p := s.TotalXP * 100 / s.XPForNextLevel
	if p > 100 {
		return 100
	}
	return p
}

// EarnedBadges counts earned badges.
func (s LearnerStats) EarnedBadges() int {
	n := 0
	for _, b := range s.Badges {
		if b.Earned {
			n++
		}
	}
	return n
}

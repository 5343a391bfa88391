package models

// ExerciseKind names the interaction an exercise asks for.
type ExerciseKind string

const (
	KindListenSelect ExerciseKind = "listen-select"
	KindListenType   ExerciseKind = "listen-type"
	KindReadSelect   ExerciseKind = "read-select"
	KindMatching     ExerciseKind = "matching"
	KindPhonetics    ExerciseKind = "phonetics"
)

// Valid reports whether k is one of the known kinds.
func (k ExerciseKind) Valid() bool {
	switch k {
	case KindListenSelect, KindListenType, KindReadSelect, KindMatching, KindPhonetics:
		return true
	}
	return false
}

// Choice reports whether the kind is answered by picking an option.
// Only choice kinds are graded.
func (k ExerciseKind) Choice() bool {
	return k == KindListenSelect || k == KindReadSelect
}

// Listening reports whether the kind plays an audio prompt.
func (k ExerciseKind) Listening() bool {
	return k == KindListenSelect || k == KindListenType
}

// Label is the short heading shown above an exercise.
func (k ExerciseKind) Label() string {
	switch k {
	case KindListenSelect:
		return "Listen & Select"
	case KindListenType:
		return "Listen & Type"
	case KindReadSelect:
		return "Read & Select"
	case KindMatching:
		return "Match the Pairs"
	case KindPhonetics:
		return "Phonetics"
	default:
		return "Exercise"
	}
}

type ExerciseOption struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"-" yaml:"correct"`
}

type Exercise struct {
	ID       int64            `json:"id" yaml:"-"`
	LessonID string           `json:"lesson_id,omitempty" yaml:"-"`
	Position int              `json:"position" yaml:"-"`
	Kind     ExerciseKind     `json:"kind" yaml:"kind"`
	Prompt   string           `json:"prompt" yaml:"prompt"`
	AudioRef string           `json:"audio_ref,omitempty" yaml:"audio,omitempty"`
	Options  []ExerciseOption `json:"options" yaml:"options,omitempty"`
}

// Option returns the option with the given id.
func (e Exercise) Option(id string) (ExerciseOption, bool) {
	for _, o := range e.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ExerciseOption{}, false
}

// CorrectOption returns the first option flagged correct.
func (e Exercise) CorrectOption() (ExerciseOption, bool) {
	for _, o := range e.Options {
		if o.IsCorrect {
			return o, true
		}
	}
	return ExerciseOption{}, false
}

type Lesson struct {
	ID            string `json:"id"`
	UnitID        string `json:"unit_id"`
	Position      int    `json:"position"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	IsCompleted   bool   `json:"is_completed"`
	IsLocked      bool   `json:"is_locked"`
	ExerciseCount int    `json:"exercise_count"`
}

type Unit struct {
	ID          string   `json:"id"`
	Position    int      `json:"position"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Progress    int      `json:"progress"`
	IsLocked    bool     `json:"is_locked"`
	Lessons     []Lesson `json:"lessons"`
}

// CompletedLessons counts lessons flagged completed.
func (u Unit) CompletedLessons() int {
	n := 0
	for _, l := range u.Lessons {
		if l.IsCompleted {
			n++
		}
	}
	return n
}

// CurrentLesson is the first lesson that is neither completed nor locked.
func (u Unit) CurrentLesson() *Lesson {
	for i := range u.Lessons {
		if !u.Lessons[i].IsCompleted && !u.Lessons[i].IsLocked {
			return &u.Lessons[i]
		}
	}
	return nil
}

// Lesson looks up a lesson of this unit by id.
func (u Unit) Lesson(id string) (*Lesson, bool) {
	for i := range u.Lessons {
		if u.Lessons[i].ID == id {
			return &u.Lessons[i], true
		}
	}
	return nil, false
}

// CatalogContent is a complete content snapshot as imported into storage.
type CatalogContent struct {
	FallbackUnitID   string
	Units            []Unit
	Exercises        map[string][]Exercise
	DefaultExercises []Exercise
	Words            []Word
	Stats            LearnerStats
}

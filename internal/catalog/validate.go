package catalog

import (
	"errors"
	"fmt"

	"github.com/vytor/nahuatl/internal/models"
)

// Validate reports every problem in the document at once.
func Validate(doc *Document) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(doc.Units) == 0 {
		add("catalog has no units")
	}

	units := map[string]bool{}
	lessons := map[string]bool{}
	for _, u := range doc.Units {
		if u.ID == "" {
			add("unit %q: missing id", u.Title)
			continue
		}
		if units[u.ID] {
			add("unit %s: duplicate id", u.ID)
		}
		units[u.ID] = true
		if u.Progress < 0 || u.Progress > 100 {
			add("unit %s: progress %d out of range 0..100", u.ID, u.Progress)
		}
		for _, l := range u.Lessons {
			if l.ID == "" {
				add("unit %s: lesson %q missing id", u.ID, l.Title)
				continue
			}
			if lessons[l.ID] {
				add("lesson %s: duplicate id", l.ID)
			}
			lessons[l.ID] = true
		}
	}

	if doc.FallbackUnit == "" {
		add("fallback_unit is required")
	} else if !units[doc.FallbackUnit] {
		add("fallback_unit %s does not name a unit", doc.FallbackUnit)
	}

	if len(doc.DefaultExercises) == 0 {
		add("default_exercises cannot be empty")
	}
	for i, e := range doc.DefaultExercises {
		errs = append(errs, validateExercise(fmt.Sprintf("default_exercises[%d]", i), e)...)
	}
	for lessonID, exercises := range doc.Exercises {
		if !lessons[lessonID] {
			add("exercises: unknown lesson %s", lessonID)
		}
		for i, e := range exercises {
			errs = append(errs, validateExercise(fmt.Sprintf("exercises[%s][%d]", lessonID, i), e)...)
		}
	}

	words := map[string]bool{}
	for _, w := range doc.Words {
		if words[w.ID] {
			add("word %s: duplicate id", w.ID)
		}
		words[w.ID] = true
		if w.Mastery < 0 || w.Mastery > 100 {
			add("word %s: mastery %d out of range 0..100", w.ID, w.Mastery)
		}
	}

	badges := map[string]bool{}
	for _, b := range doc.Stats.Badges {
		if badges[b.ID] {
			add("badge %s: duplicate id", b.ID)
		}
		badges[b.ID] = true
	}

	return errors.Join(errs...)
}

func validateExercise(where string, e models.Exercise) []error {
	var errs []error
	if !e.Kind.Valid() {
		return []error{fmt.Errorf("%s: unknown kind %q", where, e.Kind)}
	}
	if e.Prompt == "" {
		errs = append(errs, fmt.Errorf("%s: missing prompt", where))
	}

	if !e.Kind.Choice() {
		if len(e.Options) > 0 {
			errs = append(errs, fmt.Errorf("%s: %s exercises take no options", where, e.Kind))
		}
		return errs
	}

	if len(e.Options) < 2 {
		errs = append(errs, fmt.Errorf("%s: needs at least two options", where))
	}
	seen := map[string]bool{}
	correct := 0
	for _, o := range e.Options {
		if o.ID == "" {
			errs = append(errs, fmt.Errorf("%s: option %q missing id", where, o.Text))
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate option id %q", where, o.ID))
		}
		seen[o.ID] = true
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		errs = append(errs, fmt.Errorf("%s: exactly one option must be correct, found %d", where, correct))
	}
	return errs
}

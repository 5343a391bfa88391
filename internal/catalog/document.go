// Package catalog loads the authored learning content, validates it, imports
// it into storage and serves it read-only to the screens.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/vytor/nahuatl/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed content/nahuatl.yaml
var embeddedContent []byte

// Document is the YAML form of the catalog.
type Document struct {
	FallbackUnit     string                       `yaml:"fallback_unit"`
	Units            []UnitDoc                    `yaml:"units"`
	DefaultExercises []models.Exercise            `yaml:"default_exercises"`
	Exercises        map[string][]models.Exercise `yaml:"exercises"`
	Words            []models.Word                `yaml:"words"`
	Stats            models.LearnerStats          `yaml:"stats"`
}

type UnitDoc struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Progress    int         `yaml:"progress"`
	Locked      bool        `yaml:"locked"`
	Lessons     []LessonDoc `yaml:"lessons"`
}

type LessonDoc struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Completed bool   `yaml:"completed"`
	Locked    bool   `yaml:"locked"`
	Exercises int    `yaml:"exercises"`
}

// Parse decodes a YAML catalog. Unknown fields are rejected so typos in
// authored content surface at load time.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &doc, nil
}

// LoadFile parses the catalog at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Embedded parses the content compiled into the binary.
func Embedded() (*Document, error) {
	return Parse(embeddedContent)
}

// Content converts the document to the storage snapshot.
func (d *Document) Content() models.CatalogContent {
	content := models.CatalogContent{
		FallbackUnitID:   d.FallbackUnit,
		DefaultExercises: d.DefaultExercises,
		Exercises:        d.Exercises,
		Words:            d.Words,
		Stats:            d.Stats,
	}
	for ui, u := range d.Units {
		unit := models.Unit{
			ID:          u.ID,
			Position:    ui,
			Title:       u.Title,
			Description: u.Description,
			Progress:    u.Progress,
			IsLocked:    u.Locked,
		}
		for li, l := range u.Lessons {
			unit.Lessons = append(unit.Lessons, models.Lesson{
				ID:            l.ID,
				UnitID:        u.ID,
				Position:      li,
				Title:         l.Title,
				Subtitle:      l.Subtitle,
				IsCompleted:   l.Completed,
				IsLocked:      l.Locked,
				ExerciseCount: l.Exercises,
			})
		}
		content.Units = append(content.Units, unit)
	}
	return content
}

package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/models"
)

func TestEmbedded_IsValid(t *testing.T) {
	doc, err := catalog.Embedded()
	require.NoError(t, err)
	require.NoError(t, catalog.Validate(doc))

	assert.Equal(t, "unit-1", doc.FallbackUnit)
	assert.Len(t, doc.Units, 5)
	assert.Len(t, doc.DefaultExercises, 3)
	assert.Equal(t, 1250, doc.Stats.TotalXP)
	assert.Len(t, doc.Stats.Badges, 3)
}

func TestDocument_Content(t *testing.T) {
	doc, err := catalog.Embedded()
	require.NoError(t, err)

	content := doc.Content()
	require.Len(t, content.Units, 5)

	first := content.Units[0]
	assert.Equal(t, "Unit 1: Greetings", first.Title)
	require.Len(t, first.Lessons, 5)
	assert.Equal(t, "unit-1", first.Lessons[0].UnitID)
	assert.Equal(t, 3, first.CompletedLessons())
	require.NotNil(t, first.CurrentLesson())
	assert.Equal(t, "l4", first.CurrentLesson().ID)

	last := content.Units[4]
	assert.True(t, last.IsLocked)
	assert.Equal(t, 4, last.Position)
	assert.Nil(t, last.CurrentLesson())

	ex := content.DefaultExercises[0]
	assert.Equal(t, models.KindListenSelect, ex.Kind)
	assert.Equal(t, "niltze.mp3", ex.AudioRef)
	correct, ok := ex.CorrectOption()
	require.True(t, ok)
	assert.Equal(t, "Hello", correct.Text)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := catalog.Parse([]byte("fallback_unit: unit-1\nunitz: []\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))

	doc, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.NoError(t, catalog.Validate(doc))

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

const minimalYAML = `
fallback_unit: u1
units:
  - id: u1
    title: Only unit
    lessons:
      - {id: a, title: First}
default_exercises:
  - kind: read-select
    prompt: Pick one
    options:
      - {id: x, text: Yes, correct: true}
      - {id: y, text: No}
`

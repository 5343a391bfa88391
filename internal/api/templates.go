package api

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vytor/nahuatl/internal/models"
)

var numbers = message.NewPrinter(language.English)

// LoadTemplates parses layouts, pages and partials from fsys. Pages define
// themselves under their path, e.g. "pages/home.html".
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		// slice creates a slice from variadic string arguments
		"slice": func(args ...string) []string {
			return args
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"min": func(a, b int) int {
			if a < b {
				return a
			}
			return b
		},
		"max": func(a, b int) int {
			if a > b {
				return a
			}
			return b
		},
		// seq returns a sequence of integers from start to end inclusive.
		"seq": func(start, end int) []int {
			if end < start {
				return []int{}
			}
			nums := make([]int, 0, end-start+1)
			for i := start; i <= end; i++ {
				nums = append(nums, i)
			}
			return nums
		},
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
		"json": func(v interface{}) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
		// number groups thousands, 1250 -> "1,250".
		"number": func(n int) string {
			return numbers.Sprintf("%d", n)
		},
		// percent clamps n to 0..100 for use in a CSS width.
		"percent": func(n int) template.CSS {
			n = max(0, min(100, n))
			return template.CSS(strconv.Itoa(n) + "%")
		},
		"initial": func(name string) string {
			r, _ := utf8.DecodeRuneInString(name)
			if r == utf8.RuneError {
				return "?"
			}
			return strings.ToUpper(string(r))
		},
		"optionText": func(e *models.Exercise, id string) string {
			if e == nil {
				return ""
			}
			if o, ok := e.Option(id); ok {
				return o.Text
			}
			return ""
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"layouts/*.html",
		"pages/*.html",
		"partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := fs.Glob(fsys, p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFS(fsys, p); err != nil {
			return nil, err
		}
	}

	return t, nil
}

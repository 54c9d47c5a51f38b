// Package catalog holds the built-in word categories shipped with the
// game. Category metadata carries per-language names and descriptions;
// word lists and word pairs are stored per language and resolved at read
// time with English as the fallback.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/impostor-party/impostor/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// fallbackLang is used when a category has no data for the active language
const fallbackLang = "en"

type categoryMeta struct {
	ID          string            `json:"id"`
	Icon        string            `json:"icon"`
	Difficulty  string            `json:"difficulty"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
}

// Catalog is the immutable set of built-in categories
type Catalog struct {
	meta  []categoryMeta
	words map[string]map[string][]string         // lang -> category id -> words
	pairs map[string]map[string][]models.WordPair // lang -> category id -> pairs
}

// languages present in the embedded data, in load order
var dataLanguages = []string{"en", "pt"}

// New parses the embedded category data
func New() (*Catalog, error) {
	c := &Catalog{
		words: make(map[string]map[string][]string),
		pairs: make(map[string]map[string][]models.WordPair),
	}

	raw, err := dataFS.ReadFile("data/meta.json")
	if err != nil {
		return nil, fmt.Errorf("reading built-in category metadata: %w", err)
	}
	if err := json.Unmarshal(raw, &c.meta); err != nil {
		return nil, fmt.Errorf("parsing built-in category metadata: %w", err)
	}

	for _, lang := range dataLanguages {
		words := make(map[string][]string)
		if err := c.readJSON("data/words_"+lang+".json", &words); err != nil {
			return nil, err
		}
		c.words[lang] = words

		pairs := make(map[string][]models.WordPair)
		if err := c.readJSON("data/pairs_"+lang+".json", &pairs); err != nil {
			return nil, err
		}
		c.pairs[lang] = pairs
	}

	return c, nil
}

func (c *Catalog) readJSON(path string, target interface{}) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Categories returns the built-in categories localized for lang. Unknown
// languages fall back to English, then to the first available translation.
// Enabled state defaults to true; the category service applies stored
// overrides on top.
func (c *Catalog) Categories(lang string) []models.Category {
	out := make([]models.Category, 0, len(c.meta))
	for _, m := range c.meta {
		out = append(out, models.Category{
			ID:          m.ID,
			Name:        localize(m.Name, lang),
			Icon:        m.Icon,
			Description: localize(m.Description, lang),
			IsBuiltIn:   true,
			IsEnabled:   true,
			Difficulty:  m.Difficulty,
			Words:       c.wordsFor(lang, m.ID),
			WordPairs:   c.pairsFor(lang, m.ID),
			Version:     1,
		})
	}
	return out
}

// Has reports whether id names a built-in category
func (c *Catalog) Has(id string) bool {
	for _, m := range c.meta {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Languages returns the languages the embedded data ships with
func (c *Catalog) Languages() []string {
	out := make([]string, len(dataLanguages))
	copy(out, dataLanguages)
	return out
}

func (c *Catalog) wordsFor(lang, id string) []string {
	if words, ok := c.words[lang][id]; ok && len(words) > 0 {
		return words
	}
	return c.words[fallbackLang][id]
}

func (c *Catalog) pairsFor(lang, id string) []models.WordPair {
	if pairs, ok := c.pairs[lang][id]; ok && len(pairs) > 0 {
		return pairs
	}
	return c.pairs[fallbackLang][id]
}

// localize picks the translation for lang, falling back to English and
// then to the first translation in key order
func localize(m map[string]string, lang string) string {
	if v, ok := m[lang]; ok && v != "" {
		return v
	}
	if v, ok := m[fallbackLang]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		return m[keys[0]]
	}
	return ""
}

// Package glossary provides chapter-based word trainings whose content is
// described by JSON books embedded in the binary.
package glossary

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/mathrooms/internal/plugin"
)

//go:embed content/*.json
var content embed.FS

// builtinBooks lists the embedded books in display order.
var builtinBooks = []string{"glossary.json", "animals.json"}

const schemaURL = "schema://glossary-book.json"

// Entry is one word to learn. It is shown by its clue, its pictures or both.
type Entry struct {
	Answer   string   `json:"answer"`
	Clue     string   `json:"clue,omitempty"`
	Pictures []string `json:"pictures,omitempty"`
}

// Chapter is an ordered group of entries.
type Chapter struct {
	Name           string  `json:"name"`
	RequiredStreak int     `json:"required_streak,omitempty"`
	Entries        []Entry `json:"entries"`
}

// Book is a complete word training.
type Book struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Prompt      string    `json:"prompt"`
	Chapters    []Chapter `json:"chapters"`
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := content.ReadFile("content/schema.json")
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
})

// ParseBook validates raw against the book schema and decodes it.
// Entries whose answer is blank after trimming are dropped; a chapter left
// without entries is an error.
func ParseBook(raw []byte) (*Book, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var b Book
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}
	for i := range b.Chapters {
		ch := &b.Chapters[i]
		usable := ch.Entries[:0]
		for _, e := range ch.Entries {
			e.Answer = strings.TrimSpace(e.Answer)
			e.Clue = strings.TrimSpace(e.Clue)
			if e.Answer == "" || (e.Clue == "" && len(e.Pictures) == 0) {
				continue
			}
			usable = append(usable, e)
		}
		if len(usable) == 0 {
			return nil, fmt.Errorf("book %q: chapter %q has no usable entries", b.ID, ch.Name)
		}
		ch.Entries = usable
	}
	return &b, nil
}

// Factories loads every embedded book. Any content error fails the whole load.
func Factories() ([]plugin.Factory, error) {
	out := make([]plugin.Factory, 0, len(builtinBooks))
	for _, name := range builtinBooks {
		raw, err := content.ReadFile("content/" + name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		b, err := ParseBook(raw)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		out = append(out, NewFactory(b))
	}
	return out, nil
}

// Factory builds plugins for one book.
type Factory struct {
	book *Book
}

// NewFactory returns a factory for b. b must come from ParseBook.
func NewFactory(b *Book) *Factory {
	return &Factory{book: b}
}

// Info describes the book. A chapter needs as many correct answers in a row
// as it has entries, unless it sets its own required streak.
func (f *Factory) Info() plugin.Info {
	chapters := make([]plugin.Chapter, len(f.book.Chapters))
	for i, ch := range f.book.Chapters {
		streak := ch.RequiredStreak
		if streak <= 0 {
			streak = len(ch.Entries)
		}
		chapters[i] = plugin.Chapter{Name: ch.Name, RequiredStreak: streak}
	}
	return plugin.Info{
		ID:          f.book.ID,
		Name:        f.book.Name,
		Description: f.book.Description,
		Icon:        plugin.Icon{Emoji: f.book.Icon},
		Mode:        plugin.Chapters(chapters...),
		AnswerKeys:  []plugin.AnswerKey{plugin.KeyEnter},
	}
}

func (f *Factory) New(rnd *rand.Rand) (plugin.Plugin, error) {
	if rnd == nil {
		return nil, fmt.Errorf("%s: nil random source", f.book.ID)
	}
	return newTrainer(f.book, rnd), nil
}

// Package plugins assembles the trainings shipped with mathrooms.
package plugins

import (
	"fmt"

	"github.com/abhisek/mathrooms/internal/plugin"
	"github.com/abhisek/mathrooms/internal/plugins/alphabet"
	"github.com/abhisek/mathrooms/internal/plugins/arith"
	"github.com/abhisek/mathrooms/internal/plugins/glossary"
	"github.com/abhisek/mathrooms/internal/plugins/keyboard"
)

// Builtin returns the registry of built-in trainings in menu order.
// Broken embedded content fails here rather than during play.
func Builtin() (*plugin.Registry, error) {
	factories := []plugin.Factory{
		arith.PlusFactory(),
		arith.MinusFactory(),
		arith.MultiplicationFactory(),
		arith.PlaceValueFactory(),
		alphabet.NextLetterFactory(),
		alphabet.OrderFactory(),
		keyboard.Factory(),
	}
	books, err := glossary.Factories()
	if err != nil {
		return nil, fmt.Errorf("load glossary content: %w", err)
	}
	factories = append(factories, books...)
	return plugin.NewRegistry(factories...)
}

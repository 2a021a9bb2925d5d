// Package seeders holds database seed functions behind a small
// registry. A seeder registers itself from init():
//
//	func init() { seeders.Register("products", SeedProducts) }
//
// and the whole set runs via the CLI: storefront seed.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// SeederFunc populates one slice of the database.
type SeederFunc func(db *gorm.DB) error

var (
	mu       sync.Mutex
	order    []string
	registry = map[string]SeederFunc{}
)

// Register adds a seeder under a unique name. Registering the same
// name twice panics; seeders run in registration order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("seeders: duplicate seeder %q", name))
	}
	order = append(order, name)
	registry[name] = fn
}

// RunAll executes every registered seeder, stopping on the first error.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	names := make([]string, len(order))
	copy(names, order)
	mu.Unlock()

	for _, name := range names {
		logger.Info("running seeder", "name", name)
		if err := registry[name](db); err != nil {
			return fmt.Errorf("seeder %q: %w", name, err)
		}
	}
	return nil
}

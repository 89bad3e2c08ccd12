package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
)

// Name identifies one of the two supported storage engines.
type Name string

const (
	Relational Name = "postgres"
	Document   Name = "mongo"
)

var aliases = map[string]Name{
	"":           Relational,
	"postgres":   Relational,
	"postgresql": Relational,
	"pg":         Relational,
	"mongo":      Document,
	"mongodb":    Document,
}

// ParseName maps a configured engine name to Relational or Document.
// Anything else is a configuration error.
func ParseName(s string) (Name, error) {
	n, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", apperr.Configuration("unsupported DB_ENGINE %q (use postgres or mongo)", s)
	}
	return n, nil
}

// Factory builds an unconnected backend from configuration.
type Factory func(cfg *config.Config, logger *logrus.Logger) Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[Name]Factory)
)

// Register makes a backend available to Select. Called from init() of each
// backend package.
func Register(name Name, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("engine: %q already registered", name))
	}
	factories[name] = f
}

func lookup(name Name) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Registered lists the engines linked into the binary.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}

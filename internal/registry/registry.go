// Package registry maps sport tags to the modules that build their matches.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/XavierBriggs/Scoreboard/pkg/contracts"
	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// SportRegistry is the scoreboard's match factory. It holds one SportModule per
// sport tag and hands CreateMatch to the module registered for the requested
// sport; a tag with no module yields an UnsupportedSportError, and errors from
// the module itself (same-team contenders) are returned unchanged.
type SportRegistry struct {
	sports map[models.Sport]contracts.SportModule
	mu     sync.RWMutex
}

// NewSportRegistry creates a new sport registry
func NewSportRegistry() *SportRegistry {
	return &SportRegistry{
		sports: make(map[models.Sport]contracts.SportModule),
	}
}

// Register makes a sport available to CreateMatch. Each sport tag can be registered once.
func (r *SportRegistry) Register(sport contracts.SportModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sportKey := sport.GetSportKey()
	if _, exists := r.sports[sportKey]; exists {
		return fmt.Errorf("sport %s is already registered", sportKey)
	}

	r.sports[sportKey] = sport
	return nil
}

// Get retrieves a sport module by key
func (r *SportRegistry) Get(sportKey models.Sport) (contracts.SportModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sport, exists := r.sports[sportKey]
	return sport, exists
}

// GetAll returns all registered sports ordered by key
func (r *SportRegistry) GetAll() []contracts.SportModule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sports := make([]contracts.SportModule, 0, len(r.sports))
	for _, sport := range r.sports {
		sports = append(sports, sport)
	}
	sort.Slice(sports, func(i, j int) bool {
		return sports[i].GetSportKey() < sports[j].GetSportKey()
	})
	return sports
}

// Count returns the number of registered sports
func (r *SportRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sports)
}

// CreateMatch builds a fresh 0-0 match of the given sport between two team identifiers
func (r *SportRegistry) CreateMatch(homeID, awayID string, sport models.Sport) (contracts.Match, error) {
	module, ok := r.Get(sport)
	if !ok {
		return nil, &models.UnsupportedSportError{Sport: sport}
	}

	return module.NewMatch(models.Team(homeID), models.Team(awayID))
}

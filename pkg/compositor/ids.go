package compositor

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

var idSuffix = regexp.MustCompile(`^[a-z]+-(\d+)$`)

// IDGenerator hands out ids of the form "prefix-N". Counters are seeded
// from ids observed in loaded state so a restart never reissues an id
// that is already persisted.
type IDGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewIDGenerator creates an IDGenerator with all counters at zero.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{counters: make(map[string]int)}
}

// NextID returns the next id for the prefix.
func (g *IDGenerator) NextID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.counters[prefix])
}

// Observe bumps the matching prefix counter so NextID never collides
// with the given id. Ids in a foreign format are ignored.
func (g *IDGenerator) Observe(id string) {
	m := idSuffix.FindStringSubmatch(id)
	if m == nil {
		return
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return
	}
	prefix := id[:len(id)-len(m[1])-1]

	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.counters[prefix] {
		g.counters[prefix] = n
	}
}

// SeedFromScenes observes every scene and layout id in loaded state.
func (g *IDGenerator) SeedFromScenes(scenes []Scene) {
	for _, scene := range scenes {
		g.Observe(scene.ID)
		for _, layout := range scene.Layouts {
			g.Observe(layout.ID)
		}
	}
}

package geocrs

import "sync"

// pmRegistry is the append-only prime-meridian table, grounded on the
// original pm_list (defs.go).
type pmRegistry struct {
	mu    sync.RWMutex
	byKey map[string]PrimeMeridian
}

func newPMRegistry() *pmRegistry {
	return &pmRegistry{byKey: make(map[string]PrimeMeridian)}
}

func (r *pmRegistry) Register(key string, pm PrimeMeridian) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[key] = pm
}

func (r *pmRegistry) Lookup(key string) (PrimeMeridian, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pm, ok := r.byKey[key]
	return pm, ok
}

// PrimeMeridians is the package's built-in prime-meridian registry.
var PrimeMeridians = newPMRegistry()

func init() {
	reg := PrimeMeridians
	reg.Register("greenwich", Greenwich)
	reg.Register("lisbon", Lisbon)
	reg.Register("paris", Paris)
	reg.Register("bogota", Bogota)
	reg.Register("madrid", Madrid)
	reg.Register("rome", Rome)
	reg.Register("bern", Bern)
	reg.Register("jakarta", Jakarta)
	reg.Register("ferro", Ferro)
	reg.Register("brussels", Brussels)
	reg.Register("stockholm", Stockholm)
	reg.Register("athens", Athens)
	reg.Register("oslo", Oslo)
}

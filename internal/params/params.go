package params

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/GriffinCanCode/requests/internal/urlutil"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type valueSet = orderedmap.OrderedMap[string, struct{}]

// Params maps each key to an ordered set of distinct values.
// Keys and values keep insertion order. All methods are safe for concurrent use.
type Params struct {
	mu     sync.Mutex
	values *orderedmap.OrderedMap[string, *valueSet]
}

// New creates an empty parameter set
func New() *Params {
	return &Params{values: orderedmap.New[string, *valueSet]()}
}

// FromPairs builds a parameter set from key/value pairs in order
func FromPairs(pairs ...[2]string) *Params {
	p := New()
	for _, pair := range pairs {
		p.Add(pair[0], pair[1])
	}
	return p
}

// Add inserts value under key. A duplicate value for the same key is ignored.
func (p *Params) Add(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.values.Get(key)
	if !ok {
		set = orderedmap.New[string, struct{}]()
		p.values.Set(key, set)
	}
	if _, exists := set.Get(value); !exists {
		set.Set(value, struct{}{})
	}
}

// Remove deletes key and all of its values, reporting whether it existed
func (p *Params) Remove(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.values.Delete(key)
	return ok
}

// RemoveValue deletes a single value of key, reporting whether it existed.
// The key itself is removed once its last value is gone.
func (p *Params) RemoveValue(key, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.values.Get(key)
	if !ok {
		return false
	}
	if _, ok := set.Delete(value); !ok {
		return false
	}
	if set.Len() == 0 {
		p.values.Delete(key)
	}
	return true
}

// Get returns the first inserted value of key
func (p *Params) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.values.Get(key)
	if !ok {
		return "", false
	}
	first := set.Oldest()
	if first == nil {
		return "", false
	}
	return first.Key, true
}

// Values returns every value of key in insertion order
func (p *Params) Values(key string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.values.Get(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, set.Len())
	for pair := set.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Keys returns the keys in insertion order
func (p *Params) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, p.values.Len())
	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of keys
func (p *Params) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values.Len()
}

// Encode percent-encodes every key and value and joins the pairs with '&'
func (p *Params) Encode() string {
	return p.join(urlutil.Escape)
}

// String joins the pairs without encoding
func (p *Params) String() string {
	return p.join(func(s string) string { return s })
}

// Print writes one "key: value" line per pair
func (p *Params) Print(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(w, "Params:")
	p.each(func(key, value string) {
		fmt.Fprintf(w, "%s: %s\n", key, value)
	})
}

func (p *Params) join(escape func(string) string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	p.each(func(key, value string) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escape(key))
		sb.WriteByte('=')
		sb.WriteString(escape(value))
	})
	return sb.String()
}

// each must be called with mu held
func (p *Params) each(fn func(key, value string)) {
	for kp := p.values.Oldest(); kp != nil; kp = kp.Next() {
		for vp := kp.Value.Oldest(); vp != nil; vp = vp.Next() {
			fn(kp.Key, vp.Key)
		}
	}
}

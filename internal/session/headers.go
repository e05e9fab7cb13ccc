package session

import (
	"fmt"
	"io"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Headers is an ordered header set holding one value per name.
//
// Names are matched exactly as given; "Accept" and "accept" are different
// entries. Setting an existing name replaces its value without moving it.
type Headers struct {
	values *orderedmap.OrderedMap[string, string]
}

// NewHeaders creates an empty header set
func NewHeaders() *Headers {
	return &Headers{values: orderedmap.New[string, string]()}
}

// HeadersFromPairs builds a header set from [name, value] rows in order.
// Every row must have exactly two elements.
func HeadersFromPairs(pairs [][]string) (*Headers, error) {
	h := NewHeaders()
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, failure.Newf(failure.Format, "session.headers", "row %d has %d elements, want 2", i, len(pair))
		}
		h.Set(pair[0], pair[1])
	}
	return h, nil
}

// Set stores value under name, last write wins
func (h *Headers) Set(name, value string) {
	h.values.Set(name, value)
}

// Get returns the value stored under name
func (h *Headers) Get(name string) (string, bool) {
	return h.values.Get(name)
}

// Delete removes name, reporting whether it was present
func (h *Headers) Delete(name string) bool {
	_, ok := h.values.Delete(name)
	return ok
}

// Len returns the number of headers
func (h *Headers) Len() int {
	return h.values.Len()
}

// Each calls fn for every header in stored order
func (h *Headers) Each(fn func(name, value string)) {
	for pair := h.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Pairs returns the headers as [name, value] rows in stored order
func (h *Headers) Pairs() [][]string {
	out := make([][]string, 0, h.values.Len())
	h.Each(func(name, value string) {
		out = append(out, []string{name, value})
	})
	return out
}

// Clone returns an independent copy
func (h *Headers) Clone() *Headers {
	c := NewHeaders()
	h.Each(c.Set)
	return c
}

// Print writes one "name: value" line per header
func (h *Headers) Print(w io.Writer) {
	fmt.Fprintln(w, "Request Headers:")
	h.Each(func(name, value string) {
		fmt.Fprintf(w, "%s: %s\n", name, value)
	})
}

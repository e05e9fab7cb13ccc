// Package params holds ordered, multi-valued request parameters.
//
// Each key maps to an insertion-ordered set of distinct values, so adding
// the same value twice is a no-op and Get always returns the first value
// added. Encode produces a percent-encoded "k=v&k=v" string for query
// strings and form bodies; String produces the same without encoding.
package params

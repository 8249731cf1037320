// Package catalog fetches product metadata from the external product
// catalog service and exposes it as an immutable id-keyed mapping.
//
// The catalog is best-effort: if the service is unreachable the
// pipeline proceeds with an empty mapping and every transaction simply
// goes unmatched. A missing catalog must never abort a run.
package catalog

// Entry is one product record as returned by the catalog service.
type Entry struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// Mapping is a read-only lookup from numeric product id to its entry,
// built once per run.
type Mapping map[int]Entry

// BuildMapping indexes catalog entries by id. Later duplicates win,
// matching the service's own de-duplication.
func BuildMapping(entries []Entry) Mapping {
	m := make(Mapping, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

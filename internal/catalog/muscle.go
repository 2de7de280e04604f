package catalog

// Muscle is a single catalog record. Records are immutable once the
// catalog has been loaded; questions reference them by pointer.
type Muscle struct {
	// ID is assigned at load time in source order: "muscle-1", "muscle-2", ...
	ID string `json:"id"`

	Name  string `json:"name"`
	Group string `json:"group"`

	LatinName Field `json:"latinName"`
	Origin    Field `json:"origin"`
	Insertion Field `json:"insertion"`
	Function  Field `json:"function"`
}

package model

// Tester performs QA work on orders. Orders reference testers by id only.
type Tester struct {
	ID        int64
	Name      string
	GeoFocus  string
	Completed int
	Rating    float64
	Active    bool
}

// Country is static reference data keyed by ISO code.
type Country struct {
	Name string
	Flag string
}

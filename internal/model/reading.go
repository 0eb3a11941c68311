package model

// Reading is one row of the water level table
type Reading struct {
	Station string `json:"station"`
	Value   string `json:"value"`
	Delta   string `json:"delta"`
}

// ReadingSet holds readings in document order. Station names are not unique.
type ReadingSet []Reading

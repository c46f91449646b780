package models

// CatalogEntry is a catalog species as the core sees it.
type CatalogEntry struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
	Image string   `json:"image"`
}

// ListItem is one row of a catalog listing page.
type ListItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Stats are the six base stats of a species.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// CatalogDetails extends CatalogEntry with the detail view data.
type CatalogDetails struct {
	CatalogEntry
	Description string   `json:"description"`
	Generation  string   `json:"generation"`
	Weaknesses  []string `json:"weaknesses"`
	WeightKg    float64  `json:"weight_kg"`
	HeightM     float64  `json:"height_m"`
	Evolutions  []string `json:"evolutions"`
	Involutions []string `json:"involutions"`
	Stats       Stats    `json:"stats"`
}

// EvolutionNode is one species in an evolution tree.
type EvolutionNode struct {
	Name      string           `json:"name"`
	EvolvesTo []*EvolutionNode `json:"evolves_to"`
}

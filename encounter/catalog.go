package encounter

// Move is the static definition of a move.
type Move struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Power    int    `yaml:"power"`
	Accuracy int    `yaml:"accuracy"`
	Kind     string `yaml:"kind"`
}

// Item is the static definition of a bag item.
type Item struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Heal int    `yaml:"heal"`
}

type MoveCatalog map[string]Move

type ItemCatalog map[string]Item

// Lookup returns the move, or a zero-power placeholder named after the id.
func (c MoveCatalog) Lookup(id string) Move {
	if m, ok := c[id]; ok {
		return m
	}
	return Move{ID: id, Name: id}
}

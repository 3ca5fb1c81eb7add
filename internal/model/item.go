package model

// Item is the domain model for a todo entry.
// ID is positional: storage reassigns it on every load.
type Item struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Count returns how many items are still open and how many are done.
func Count(items []Item) (active, completed int) {
	for _, it := range items {
		if it.Completed {
			completed++
		} else {
			active++
		}
	}
	return
}

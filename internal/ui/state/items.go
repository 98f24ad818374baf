package state

import "strconv"

// Item is a single selectable row.
type Item struct {
	ID    string
	Label string
}

// IntItem builds an item keyed by a numeric record id.
func IntItem(id int, label string) Item {
	return Item{ID: strconv.Itoa(id), Label: label}
}

// IntID returns the numeric id of an item built with IntItem.
func (i Item) IntID() (int, bool) {
	v, err := strconv.Atoi(i.ID)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

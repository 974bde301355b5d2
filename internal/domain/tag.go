package domain

// Tag is a global label shared across quotes.
// Name is unique; a tag exists only while at least one quote references it.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagIDs returns the ids of tags in order.
func TagIDs(tags []Tag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

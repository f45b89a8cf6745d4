// Package trails holds the fixed list of nearby trails shown on the results
// screen.
package trails

type Entry struct {
	ID         int
	Name       string
	Difficulty string
	Distance   string
}

var canonical = [...]Entry{
	{ID: 1, Name: "Bundoora Park Trail", Difficulty: "Easy", Distance: "3 km"},
	{ID: 2, Name: "Darebin Creek Trail", Difficulty: "Medium", Distance: "5 km"},
	{ID: 3, Name: "Plenty Gorge Park", Difficulty: "Hard", Distance: "10 km"},
	{ID: 4, Name: "Gresswell Forest Loop", Difficulty: "Medium", Distance: "4 km"},
}

// List returns a fresh copy of the trails in display order.
func List() []Entry {
	out := make([]Entry, len(canonical))
	copy(out, canonical[:])
	return out
}

package sequence

//go:generate go tool enumer -type=Category -trimprefix=Category

// Category describes how a sequence can be traversed.
type Category uint8

const (
	// CategoryAdjacent sequences are backed by contiguous storage.
	CategoryAdjacent Category = iota
	// CategoryIndexing sequences support random access by index.
	CategoryIndexing
	// CategoryForwards sequences can only be walked front to back.
	CategoryForwards
	// CategoryStreamer sequences can be walked once.
	CategoryStreamer
)

// Sequence is implemented by every view type.
type Sequence interface {
	Category() Category
}

var _ Sequence = Adjacent[int]{}

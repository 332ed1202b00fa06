package distort

import "github.com/matzehuels/qrnoize/pkg/raster"

// noCopy lets go vet's copylocks check flag accidental Stack copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Stack is an ordered pipeline of modifiers. It owns its modifiers: a
// modifier added to one stack must not be added to another, because
// printers carry private caches and random sources.
//
// Stacks are not safe for concurrent use. Build one stack per worker.
type Stack struct {
	_      noCopy
	layers []Modifier
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// AddLayer appends m to the pipeline.
func (s *Stack) AddLayer(m Modifier) {
	s.layers = append(s.layers, m)
}

// ProcessImage applies every layer in insertion order.
func (s *Stack) ProcessImage(r *raster.Raster) {
	for _, m := range s.layers {
		m.ModifyImage(r)
	}
}

// Clear drops all layers so the stack can be rebuilt.
func (s *Stack) Clear() {
	clear(s.layers)
	s.layers = s.layers[:0]
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Layers returns a copy of the layer list.
func (s *Stack) Layers() []Modifier {
	out := make([]Modifier, len(s.layers))
	copy(out, s.layers)
	return out
}

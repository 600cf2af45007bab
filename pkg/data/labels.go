package data

import "fmt"

// Labels holds one class value per sample identifier.
type Labels struct {
	idName string
	name   string
	index  []string
	byID   map[string]string
}

// NewLabels builds a label table. index and values are parallel slices.
func NewLabels(idName, name string, index, values []string) (*Labels, error) {
	if len(index) != len(values) {
		return nil, fmt.Errorf("%w: %d identifiers for %d labels", ErrMalformed, len(index), len(values))
	}
	if err := checkUnique("label", index); err != nil {
		return nil, err
	}
	l := &Labels{
		idName: idName,
		name:   name,
		index:  append([]string(nil), index...),
		byID:   make(map[string]string, len(index)),
	}
	for i, id := range index {
		l.byID[id] = values[i]
	}
	return l, nil
}

// Name is the header of the class column.
func (l *Labels) Name() string { return l.name }

// Len returns the number of labeled samples.
func (l *Labels) Len() int { return len(l.index) }

// Index returns a copy of the labeled identifiers in file order.
func (l *Labels) Index() []string { return append([]string(nil), l.index...) }

// Get returns the class of a sample identifier.
func (l *Labels) Get(id string) (string, bool) {
	v, ok := l.byID[id]
	return v, ok
}

// Align joins the labels onto index by identifier and returns the classes in
// index order. Every identifier must be labeled and every label must belong to
// an identifier in index.
func (l *Labels) Align(index []string) ([]string, error) {
	out := make([]string, len(index))
	for i, id := range index {
		v, ok := l.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: sample %q has no label", ErrMisaligned, id)
		}
		out[i] = v
	}
	if len(index) != len(l.index) {
		in := make(map[string]struct{}, len(index))
		for _, id := range index {
			in[id] = struct{}{}
		}
		for _, id := range l.index {
			if _, ok := in[id]; !ok {
				return nil, fmt.Errorf("%w: label %q has no sample", ErrMisaligned, id)
			}
		}
		return nil, fmt.Errorf("%w: %d samples, %d labels", ErrMisaligned, len(index), len(l.index))
	}
	return out, nil
}

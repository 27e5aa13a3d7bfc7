package region

import "fmt"

// ErrIDExhausted is returned once a Series runs past its configured end,
// corresponding to the IdExhausted error kind in spec.md §7.
var ErrIDExhausted = fmt.Errorf("region: id series exhausted")

// Series allocates monotone, zero-padded IDs within one kind's namespace,
// ported from the original NumberSeries (logic/numb_gen.py): PREFIX +
// zero-padded integer, width derived from the configured end value.
type Series struct {
	prefix string
	end    int
	width  int
	next   int
}

// NewSeries creates an ID generator that yields PREFIX+start .. PREFIX+end.
func NewSeries(prefix string, start, end int) *Series {
	return &Series{
		prefix: prefix,
		end:    end,
		width:  len(fmt.Sprintf("%d", end)),
		next:   start,
	}
}

// Next returns the next ID, or ErrIDExhausted once the series has run past
// its configured end. Callers must skip the affected region on error and
// continue (spec.md §7: IdExhausted is local, non-fatal).
func (s *Series) Next() (ID, error) {
	if s.next > s.end {
		return "", ErrIDExhausted
	}
	id := ID(fmt.Sprintf("%s%0*d", s.prefix, s.width, s.next))
	s.next++
	return id, nil
}

package epidemic

// Household is a fixed group of people who have contact every day.
type Household struct {
	index   int
	members []*Person
}

// newHousehold stores members verbatim and points each member back at the
// household's index in the population.
func newHousehold(index int, members []*Person) *Household {
	h := &Household{index: index, members: members}
	for _, p := range members {
		p.household = index
	}
	return h
}

func (h *Household) Index() int         { return h.index }
func (h *Household) Members() []*Person { return h.members }
func (h *Household) Len() int           { return len(h.members) }

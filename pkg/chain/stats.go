package chain

// Stats summarizes the shape of a built model.
type Stats struct {
	States      int // unique states discovered in the corpus
	Starters    int // distinct sentence-starter states
	Transitions int // recorded edges, duplicates included
	Terminals   int // states with no outgoing transitions
}

// tableStats derives Stats from the node-id view shared by all
// representations. states is the total number of canonical states.
func tableStats(t table, states int) Stats {
	s := Stats{States: states, Starters: t.Starters()}
	for id := 0; id < states; id++ {
		n := t.succLen(id)
		if n == 0 {
			s.Terminals++
		}
		s.Transitions += n
	}
	return s
}

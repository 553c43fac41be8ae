package text

// Page is one screen of dialogue. A timed page advances on its own once it is
// fully revealed; an untimed page waits for the confirm key.
type Page struct {
	Lines []string
	Wait  float64
	Timed bool
}

// Lines builds a page that waits for input.
func Lines(lines ...string) Page {
	return Page{Lines: lines}
}

// Timed builds a page that advances wait seconds after it is fully shown.
func Timed(wait float64, lines ...string) Page {
	return Page{Lines: lines, Wait: wait, Timed: true}
}

func (p Page) length() int {
	n := 0
	for _, l := range p.Lines {
		n += len([]rune(l))
	}
	return n
}

package rng

// Deck deals a fixed set of values in shuffled order, reshuffling once
// exhausted. On reshuffle, if the first card of the new order equals the
// immediately preceding deal it is swapped with the second card, so two
// consecutive deals are never equal. Used for obstacle skin selection.
type Deck[T comparable] struct {
	src     *Source
	cards   []T
	idx     int
	prev    T
	hasPrev bool
}

// NewDeck creates a deck over the given values. The slice is copied.
// Requires at least two distinct values for the no-repeat guarantee.
func NewDeck[T comparable](src *Source, values []T) *Deck[T] {
	d := &Deck[T]{
		src:   src,
		cards: append([]T(nil), values...),
	}
	d.shuffle()
	return d
}

func (d *Deck[T]) shuffle() {
	d.src.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.idx = 0

	// Avoid a back-to-back repeat across the reshuffle boundary
	if d.hasPrev && len(d.cards) > 1 && d.cards[0] == d.prev {
		d.cards[0], d.cards[1] = d.cards[1], d.cards[0]
	}
}

// Deal returns the next value.
func (d *Deck[T]) Deal() T {
	if d.idx >= len(d.cards) {
		d.shuffle()
	}
	v := d.cards[d.idx]
	d.idx++
	d.prev = v
	d.hasPrev = true
	return v
}

// HalfDeck deals a fixed set of values in shuffled order but reshuffles
// after dealing only half the cards. This guarantees at least N/2 distinct
// values appear from the top of each shuffle before any repeat — a
// deliberately looser guarantee than Deck, preserved as-is because it only
// affects perceived visual variety (hazard orientation and size).
type HalfDeck[T comparable] struct {
	src   *Source
	cards []T
	idx   int
	limit int
}

// NewHalfDeck creates a half-deck over the given values. The slice is copied.
func NewHalfDeck[T comparable](src *Source, values []T) *HalfDeck[T] {
	d := &HalfDeck[T]{
		src:   src,
		cards: append([]T(nil), values...),
	}
	d.limit = (len(d.cards) + 1) / 2
	if d.limit < 1 {
		d.limit = 1
	}
	d.shuffle()
	return d
}

func (d *HalfDeck[T]) shuffle() {
	d.src.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.idx = 0
}

// Deal returns the next value.
func (d *HalfDeck[T]) Deal() T {
	if d.idx >= d.limit {
		d.shuffle()
	}
	v := d.cards[d.idx]
	d.idx++
	return v
}

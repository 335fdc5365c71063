package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Randomizer supplies the sequence of spawned pieces. Implementations are not
// safe for concurrent use; the owning session serializes access.
type Randomizer interface {
	Next() Kind
}

// Bag deals all seven kinds in a shuffled order, then reshuffles.
type Bag struct {
	rng   *rand.Rand
	kinds []Kind
	i     int
}

// NewBag creates a seeded 7-bag randomizer.
func NewBag(seed int64) *Bag {
	b := &Bag{rng: rand.New(rand.NewSource(seed))}
	b.shuffle()
	return b
}

// Next returns the next kind from the bag.
func (b *Bag) Next() Kind {
	k := b.kinds[b.i]
	b.i++
	if b.i == len(b.kinds) {
		b.shuffle()
	}
	return k
}

func (b *Bag) shuffle() {
	b.kinds = Kinds()
	b.rng.Shuffle(len(b.kinds), func(i, j int) { b.kinds[i], b.kinds[j] = b.kinds[j], b.kinds[i] })
	b.i = 0
}

// Uniform picks every kind independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a seeded uniform randomizer.
func NewUniform(seed int64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly chosen kind.
func (u *Uniform) Next() Kind {
	return Kind(u.rng.Intn(int(numKinds)))
}

// Sequence repeats a fixed list of kinds. Used for replays and tests.
type Sequence struct {
	kinds []Kind
	i     int
}

// NewSequence creates a randomizer cycling through kinds.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	return &Sequence{kinds: kinds}
}

// Next returns the next kind in the cycle.
func (s *Sequence) Next() Kind {
	k := s.kinds[s.i%len(s.kinds)]
	s.i++
	return k
}

// NewRandomizer creates a randomizer by config name.
func NewRandomizer(name string, seed int64) (Randomizer, error) {
	switch name {
	case config.RandomizerBag, "":
		return NewBag(seed), nil
	case config.RandomizerUniform:
		return NewUniform(seed), nil
	default:
		return nil, fmt.Errorf("tetris: unknown randomizer %q", name)
	}
}

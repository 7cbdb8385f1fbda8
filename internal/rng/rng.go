// Package rng provides the per-battle deterministic random subsystem. A
// Manager fans one battle seed out into independently seeded named streams
// (move, hit, crit, damage, status, morale, init). Stream state derives from
// hashing (seed, round, stream name), never from a running counter, so
// re-deriving a stream for the same round always reproduces the same
// sequence no matter how many draws a previous run consumed.
package rng

import "math"

// Stream names used by the battle resolvers.
const (
	StreamMove   = "move"
	StreamHit    = "hit"
	StreamCrit   = "crit"
	StreamDamage = "damage"
	StreamStatus = "status"
	StreamMorale = "morale"
	StreamInit   = "init"
)

// Manager owns all draw streams of one battle. It is not safe for concurrent
// use; each battle instance holds its own manager (single-writer model).
type Manager struct {
	seed    int64
	round   int
	streams map[string]*Stream
}

// NewManager creates a manager for the given battle seed, starting at round 1.
func NewManager(seed int64) *Manager {
	return &Manager{seed: seed, round: 1, streams: make(map[string]*Stream)}
}

// Seed returns the battle seed the manager was created with.
func (m *Manager) Seed() int64 { return m.seed }

// Round returns the round the streams are currently derived for.
func (m *Manager) Round() int { return m.round }

// Stream returns the named draw stream for the current round, deriving it on
// first use.
func (m *Manager) Stream(name string) *Stream {
	if s, ok := m.streams[name]; ok {
		return s
	}
	s := &Stream{state: deriveState(m.seed, m.round, name)}
	m.streams[name] = s
	return s
}

// AdvanceRound reseeds every stream for the next round. Draws made before the
// advance cannot leak into the new round's sequences.
func (m *Manager) AdvanceRound() {
	m.round++
	m.streams = make(map[string]*Stream)
}

// SetRound re-derives all streams for an explicit round number, which makes
// replays and speculative what-if resolutions of a past round safe.
func (m *Manager) SetRound(round int) {
	m.round = round
	m.streams = make(map[string]*Stream)
}

// Clone returns an independent manager whose streams carry the exact current
// generator state, copied directly rather than replayed draw by draw.
func (m *Manager) Clone() *Manager {
	c := &Manager{seed: m.seed, round: m.round, streams: make(map[string]*Stream, len(m.streams))}
	for name, s := range m.streams {
		c.streams[name] = &Stream{state: s.state, spare: s.spare, hasSpare: s.hasSpare}
	}
	return c
}

// Stream is a deterministic generator producing values in [0, 1) from a
// simple linear-congruential engine, with layered helpers for the draw
// shapes the resolvers need.
type Stream struct {
	state    uint64
	spare    float64
	hasSpare bool
}

// lcg constants from Knuth's MMIX generator.
const (
	lcgMul = 6364136223846793005
	lcgInc = 1442695040888963407
)

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state = s.state*lcgMul + lcgInc
	return float64(s.state>>11) / float64(1<<53)
}

// IntN returns a uniform integer in [0, n). n <= 0 yields 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float64() * float64(n))
}

// Range returns a uniform integer in [lo, hi] inclusive.
func (s *Stream) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Percent rolls 1..100 and reports roll <= chance.
func (s *Stream) Percent(chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return s.Range(1, 100) <= chance
}

// Uniform returns a uniform value in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Weighted picks an index with probability proportional to its weight.
// Non-positive weights are skipped; all-zero weights yield 0.
func (s *Stream) Weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	roll := s.IntN(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}

// Shuffle permutes n elements with the Fisher-Yates swap callback.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.IntN(i+1))
	}
}

// Gaussian returns a normally distributed value via Box-Muller, caching the
// spare deviate.
func (s *Stream) Gaussian(mean, stddev float64) float64 {
	if s.hasSpare {
		s.hasSpare = false
		return mean + stddev*s.spare
	}
	var u, v, r float64
	for {
		u = 2*s.Float64() - 1
		v = 2*s.Float64() - 1
		r = u*u + v*v
		if r > 0 && r < 1 {
			break
		}
	}
	f := math.Sqrt(-2 * math.Log(r) / r)
	s.spare = v * f
	s.hasSpare = true
	return mean + stddev*u*f
}

// deriveState mixes seed, round and stream name into an initial generator
// state with splitmix-style avalanching.
func deriveState(seed int64, round int, name string) uint64 {
	x := uint64(seed)
	x ^= uint64(round) * 0x9E3779B97F4A7C15
	x ^= fnv1a(name) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	if x == 0 {
		x = lcgInc
	}
	return x
}

func fnv1a(s string) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

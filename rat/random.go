package rat

import (
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"
)

// Random is a uniform integer source. Intn(n) returns a value in [0, n)
// and is never called with n <= 0.
type Random interface {
	Intn(n int) int
}

type seededRandom struct {
	mu  sync.Mutex
	rng *frand.RNG
}

// NewSeeded returns a deterministic source: equal seeds yield equal
// sequences. It is safe to share between connections.
func NewSeeded(seed uint64) Random {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return &seededRandom{rng: frand.NewCustom(key[:], 1024, 12)}
}

func (s *seededRandom) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

type cryptoRandom struct{}

func (cryptoRandom) Intn(n int) int { return frand.Intn(n) }

// CryptoRandom draws from the process-wide frand generator.
func CryptoRandom() Random { return cryptoRandom{} }

package exam

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/examstack/examstack/internal/bank"
)

// Memo caches the sampled exam per distinct pool content, counts and seed so
// repeated requests within a process do not re-shuffle. Purely a performance
// shortcut: New is deterministic either way.
type Memo struct {
	mu     sync.Mutex
	key    string
	sample *Sample
}

// Sample returns the cached exam for this pool/counts/seed, building it on
// first use or when any input changed.
func (m *Memo) Sample(pool []bank.Question, counts Counts, seed int64) *Sample {
	key := fingerprint(pool, counts, seed)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sample == nil || m.key != key {
		m.sample = New(pool, counts, seed)
		m.key = key
	}
	return m.sample
}

func fingerprint(pool []bank.Question, counts Counts, seed int64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d/%d/%d/%d\n", counts.Single, counts.Multiple, counts.TrueFalse, seed)
	for _, q := range pool {
		fmt.Fprintf(h, "%s\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s\n",
			q.Stem, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.OptionE, q.OptionF, q.Answer)
	}
	return hex.EncodeToString(h.Sum(nil))
}

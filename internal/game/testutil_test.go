package game

import (
	"testing"

	"github.com/peterkuimelis/cosmicloot/internal/log"
)

// scriptedRand is a RandomSource that follows a predefined script.
// Intn returns the scripted picks in order (then 0); Shuffle leaves the order
// untouched and only counts calls, so draw order stays predictable.
type scriptedRand struct {
	picks    []int
	pos      int
	shuffles int
}

func newScriptedRand(picks ...int) *scriptedRand {
	return &scriptedRand{picks: picks}
}

func (r *scriptedRand) Intn(n int) int {
	if r.pos >= len(r.picks) {
		return 0
	}
	v := r.picks[r.pos] % n
	r.pos++
	return v
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	r.shuffles++
}

// reverseRand shuffles by reversing, so a reshuffle is observable but deterministic.
type reverseRand struct{}

func (reverseRand) Intn(n int) int { return 0 }

func (reverseRand) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

// --- Test card helpers ---

func damageCard(name string, cost, amount int) *Card {
	return &Card{Name: name, Cost: cost, Description: "test damage", Effect: Effect{Kind: EffectDamage, Amount: amount}}
}

func shieldCard(name string, cost, amount int) *Card {
	return &Card{Name: name, Cost: cost, Description: "test shield", Effect: Effect{Kind: EffectShield, Amount: amount}}
}

func makeDeck(cards ...*Card) []*Card {
	deck := make([]*Card, 0, len(cards))
	deck = append(deck, cards...)
	return deck
}

// testConfig returns the stock config made deterministic: no opening shuffle,
// a scripted RNG that always picks the enemy's first action (Attack 12), and
// a memory logger.
func testConfig() (Config, *log.MemoryLogger) {
	cfg := DefaultConfig()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.Rand = newScriptedRand()
	cfg.NoShuffle = true
	return cfg, logger
}

// newTestBattle builds a battle from testConfig after applying mutate.
func newTestBattle(t *testing.T, mutate func(*Config)) (*Battle, *log.MemoryLogger) {
	t.Helper()
	cfg, logger := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	b, err := NewBattle(cfg)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	return b, logger
}

// assertConservation checks that no card has been created or lost.
func assertConservation(t *testing.T, p *Player, want int) {
	t.Helper()
	if got := p.CardCount(); got != want {
		t.Fatalf("card count = %d (deck %d, hand %d, discard %d), want %d",
			got, p.DeckCount(), p.HandCount(), p.DiscardCount(), want)
	}
}

// logEvents dumps the event log for visibility when tests run with -v.
func logEvents(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
}

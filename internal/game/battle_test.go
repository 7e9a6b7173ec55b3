package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/peterkuimelis/cosmicloot/internal/log"
)

func TestNewBattleOpeningState(t *testing.T) {
	b, logger := newTestBattle(t, nil)

	if b.Phase() != PhasePlayerTurn || b.Turn() != 1 {
		t.Fatalf("opening phase=%v turn=%d, want Player Turn / 1", b.Phase(), b.Turn())
	}
	snap := b.Snapshot()
	if snap.Player.Health != 100 || snap.Player.Energy != 3 || snap.Player.Shield != 0 {
		t.Errorf("player = %+v", snap.Player)
	}
	if len(snap.Player.Hand) != 5 || snap.Player.DeckCount != 5 || snap.Player.DiscardCount != 0 {
		t.Errorf("hand=%d deck=%d discard=%d, want 5/5/0",
			len(snap.Player.Hand), snap.Player.DeckCount, snap.Player.DiscardCount)
	}
	// Unshuffled starter deck: four Deflectors on top, then the Laser Shots.
	wantHand := []string{CardDeflectors, CardDeflectors, CardDeflectors, CardDeflectors, CardLaserShot}
	for i, name := range wantHand {
		if snap.Player.Hand[i].Name != name {
			t.Errorf("hand[%d] = %s, want %s", i, snap.Player.Hand[i].Name, name)
		}
	}
	if snap.Opponent.Health != 80 || snap.Opponent.NextAction.Kind != ActionAttack {
		t.Errorf("opponent = %+v", snap.Opponent)
	}
	if n := len(logger.EventsOfType(log.EventIntent)); n != 1 {
		t.Errorf("intent events = %d, want 1", n)
	}
	if n := len(logger.EventsOfType(log.EventDraw)); n != 5 {
		t.Errorf("draw events = %d, want 5", n)
	}
}

func TestNewBattleRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no actions", func(c *Config) { c.Enemy.Actions = nil }, ErrEmptyActionTable},
		{"dead player", func(c *Config) { c.PlayerHealth = 0 }, ErrInvalidConfig},
		{"dead enemy", func(c *Config) { c.Enemy.MaxHealth = -1 }, ErrInvalidConfig},
		{"no catalog", func(c *Config) { c.Catalog = nil }, ErrInvalidConfig},
		{"unknown card", func(c *Config) { c.StarterDeck = []DeckEntry{{Name: "Railgun", Count: 2}} }, ErrUnknownCard},
		{"unknown action", func(c *Config) { c.Enemy.Actions = []EnemyAction{{Kind: ActionKind(7), Amount: 12}} }, ErrInvalidConfig},
		{"negative action", func(c *Config) { c.Enemy.Actions = []EnemyAction{{Kind: ActionDefend, Amount: -1}} }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := testConfig()
			tt.mutate(&cfg)
			_, err := NewBattle(cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewBattle error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestPlayHeavyBlastScenarioA: full-health opponent, Heavy Blast with 3 energy.
func TestPlayHeavyBlastScenarioA(t *testing.T) {
	b, logger := newTestBattle(t, func(c *Config) {
		c.StarterDeck = []DeckEntry{{Name: CardHeavyBlast, Count: 10}}
	})
	defer logEvents(t, logger)

	if !b.PlayCard(0) {
		t.Fatal("PlayCard(0) rejected")
	}

	snap := b.Snapshot()
	if snap.Opponent.Health != 60 {
		t.Errorf("opponent health = %d, want 60", snap.Opponent.Health)
	}
	if snap.Player.Energy != 1 {
		t.Errorf("energy = %d, want 1", snap.Player.Energy)
	}
	if len(snap.Player.Hand) != 4 || snap.Player.DiscardCount != 1 {
		t.Errorf("hand=%d discard=%d, want 4/1", len(snap.Player.Hand), snap.Player.DiscardCount)
	}
	if snap.Phase != PhasePlayerTurn {
		t.Errorf("phase = %v, want Player Turn", snap.Phase)
	}
	if snap.Player.Status != "Dealt 20 damage with a Heavy Blast!" {
		t.Errorf("status = %q", snap.Player.Status)
	}
	if n := len(logger.EventsOfType(log.EventPlayCard)); n != 1 {
		t.Errorf("play events = %d, want 1", n)
	}
	assertConservation(t, b.player, 10)
}

// TestLethalBlastScenarioD: an opponent at 20 health dies to Heavy Blast.
func TestLethalBlastScenarioD(t *testing.T) {
	b, logger := newTestBattle(t, func(c *Config) {
		c.StarterDeck = []DeckEntry{{Name: CardHeavyBlast, Count: 10}}
		c.Enemy.MaxHealth = 20
	})
	defer logEvents(t, logger)

	b.PlayCard(0)

	if b.Phase() != PhaseVictory || !b.Over() {
		t.Fatalf("phase = %v, want Victory", b.Phase())
	}
	if b.opponent.Health != 0 {
		t.Errorf("opponent health = %d, want 0", b.opponent.Health)
	}
	if n := len(logger.EventsOfType(log.EventVictory)); n != 1 {
		t.Errorf("victory events = %d, want 1", n)
	}
}

func TestOverkillClampsAndWins(t *testing.T) {
	b, _ := newTestBattle(t, nil)

	b.opponent.TakeDamage(500)
	b.checkTerminal()

	if b.opponent.Health != 0 {
		t.Errorf("opponent health = %d, want 0", b.opponent.Health)
	}
	if b.Phase() != PhaseVictory {
		t.Errorf("phase = %v, want Victory", b.Phase())
	}
}

func TestTerminalPhaseIsFinal(t *testing.T) {
	b, logger := newTestBattle(t, func(c *Config) {
		c.StarterDeck = []DeckEntry{{Name: CardHeavyBlast, Count: 10}}
		c.Enemy.MaxHealth = 20
	})
	b.PlayCard(0)
	before := b.Snapshot()

	if b.PlayCard(0) {
		t.Error("PlayCard accepted after victory")
	}
	if b.EndTurn() {
		t.Error("EndTurn accepted after victory")
	}
	if b.AdvanceEnemyTurn() {
		t.Error("AdvanceEnemyTurn accepted after victory")
	}

	// A later player death does not overwrite the first outcome.
	b.player.Health = 0
	b.checkTerminal()

	if b.Phase() != PhaseVictory {
		t.Errorf("phase = %v, want Victory", b.Phase())
	}
	after := b.Snapshot()
	after.Player.Health = before.Player.Health
	if !reflect.DeepEqual(before, after) {
		t.Errorf("rejected commands changed state:\nbefore %+v\nafter  %+v", before, after)
	}
	if n := len(logger.EventsOfType(log.EventDefeat)); n != 0 {
		t.Errorf("defeat logged after victory")
	}
	if n := len(logger.EventsOfType(log.EventRejected)); n != 3 {
		t.Errorf("rejected events = %d, want 3", n)
	}
}

func TestPlayCardRejections(t *testing.T) {
	t.Run("index out of range", func(t *testing.T) {
		b, logger := newTestBattle(t, nil)
		before := b.Snapshot()
		for _, idx := range []int{-1, 5, 42} {
			if b.PlayCard(idx) {
				t.Errorf("PlayCard(%d) accepted", idx)
			}
		}
		if !reflect.DeepEqual(before, b.Snapshot()) {
			t.Error("rejected plays changed state")
		}
		if n := len(logger.EventsOfType(log.EventRejected)); n != 3 {
			t.Errorf("rejected events = %d, want 3", n)
		}
	})

	t.Run("not enough energy", func(t *testing.T) {
		b, _ := newTestBattle(t, func(c *Config) {
			c.StarterDeck = []DeckEntry{{Name: CardHeavyBlast, Count: 10}}
		})
		b.PlayCard(0)
		before := b.Snapshot()
		if b.PlayCard(0) {
			t.Fatal("Heavy Blast played with 1 energy")
		}
		if !reflect.DeepEqual(before, b.Snapshot()) {
			t.Error("rejected play changed state")
		}
	})

	t.Run("enemy turn", func(t *testing.T) {
		b, _ := newTestBattle(t, nil)
		b.EndTurn()
		if b.PlayCard(0) {
			t.Error("PlayCard accepted during Enemy Turn")
		}
		if b.EndTurn() {
			t.Error("EndTurn accepted during Enemy Turn")
		}
	})

	t.Run("advance during player turn", func(t *testing.T) {
		b, _ := newTestBattle(t, nil)
		if b.AdvanceEnemyTurn() {
			t.Error("AdvanceEnemyTurn accepted during Player Turn")
		}
	})
}

func TestPlayUntilOutOfEnergy(t *testing.T) {
	b, _ := newTestBattle(t, nil)

	for i := 0; i < 3; i++ {
		if !b.PlayCard(0) {
			t.Fatalf("play %d rejected", i+1)
		}
	}
	if b.PlayCard(0) {
		t.Fatal("fourth 1-cost card played on 3 energy")
	}
	snap := b.Snapshot()
	if snap.Player.Energy != 0 || snap.Player.Shield != 30 {
		t.Errorf("energy=%d shield=%d, want 0 and 30", snap.Player.Energy, snap.Player.Shield)
	}
	for _, c := range snap.Player.Hand {
		if c.Playable {
			t.Errorf("%s marked playable with no energy", c.Name)
		}
	}
}

func cardNames(cards []*Card) []string {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names
}

// TestDrawEffectReshufflesWithoutPlayedCard: the played card is out of the
// hand while its draw resolves and reaches the discard pile only afterwards.
func TestDrawEffectReshufflesWithoutPlayedCard(t *testing.T) {
	rng := newScriptedRand()
	b, logger := newTestBattle(t, func(c *Config) {
		c.Rand = rng
		c.StarterDeck = []DeckEntry{{Name: CardLaserShot, Count: 1}, {Name: CardEvasiveManeuver, Count: 1}}
	})
	defer logEvents(t, logger)
	p := b.player

	// Unshuffled: Evasive Maneuver is on top, then Laser Shot.
	if got := cardNames(p.Hand); !reflect.DeepEqual(got, []string{CardEvasiveManeuver, CardLaserShot}) {
		t.Fatalf("opening hand = %v", got)
	}
	if !b.PlayCard(1) {
		t.Fatal("Laser Shot rejected")
	}
	if !b.PlayCard(0) {
		t.Fatal("Evasive Maneuver rejected")
	}

	if got := cardNames(p.Hand); !reflect.DeepEqual(got, []string{CardLaserShot}) {
		t.Errorf("hand = %v, want [Laser Shot]", got)
	}
	if p.DeckCount() != 0 {
		t.Errorf("deck = %v, want empty", cardNames(p.Deck))
	}
	if got := cardNames(p.Discard); !reflect.DeepEqual(got, []string{CardEvasiveManeuver}) {
		t.Errorf("discard = %v, want [Evasive Maneuver]", got)
	}
	if rng.shuffles != 1 {
		t.Errorf("shuffles = %d, want 1", rng.shuffles)
	}
	if n := len(logger.EventsOfType(log.EventShuffle)); n != 1 {
		t.Errorf("shuffle events = %d, want 1", n)
	}
	if p.Shield != 5 || p.Energy != 1 {
		t.Errorf("shield=%d energy=%d, want 5/1", p.Shield, p.Energy)
	}
	assertConservation(t, p, 2)
}

func TestDrawEffectWithEmptyPilesComesUpShort(t *testing.T) {
	b, logger := newTestBattle(t, func(c *Config) {
		c.StarterDeck = []DeckEntry{{Name: CardEvasiveManeuver, Count: 1}}
	})
	p := b.player
	draws := len(logger.EventsOfType(log.EventDraw))

	if !b.PlayCard(0) {
		t.Fatal("Evasive Maneuver rejected")
	}

	if p.HandCount() != 0 || p.DeckCount() != 0 {
		t.Errorf("hand=%v deck=%v, want both empty", cardNames(p.Hand), cardNames(p.Deck))
	}
	if got := cardNames(p.Discard); !reflect.DeepEqual(got, []string{CardEvasiveManeuver}) {
		t.Errorf("discard = %v, want [Evasive Maneuver]", got)
	}
	if n := len(logger.EventsOfType(log.EventDraw)); n != draws {
		t.Errorf("draw events went from %d to %d, want no draw", draws, n)
	}
	if p.Shield != 5 || b.Phase() != PhasePlayerTurn {
		t.Errorf("shield=%d phase=%v, want 5 / Player Turn", p.Shield, b.Phase())
	}
	assertConservation(t, p, 1)
}

func TestFullRound(t *testing.T) {
	b, logger := newTestBattle(t, nil)
	defer logEvents(t, logger)

	b.PlayCard(0) // Deflectors: 10 shield

	if !b.EndTurn() {
		t.Fatal("EndTurn rejected")
	}
	snap := b.Snapshot()
	if snap.Phase != PhaseEnemyTurn || len(snap.Player.Hand) != 0 || snap.Player.DiscardCount != 5 {
		t.Fatalf("after EndTurn phase=%v hand=%d discard=%d", snap.Phase, len(snap.Player.Hand), snap.Player.DiscardCount)
	}
	for _, c := range snap.Player.Hand {
		if c.Playable {
			t.Error("card playable during Enemy Turn")
		}
	}

	if !b.AdvanceEnemyTurn() {
		t.Fatal("AdvanceEnemyTurn rejected")
	}
	snap = b.Snapshot()
	if snap.Phase != PhasePlayerTurn || snap.Turn != 2 {
		t.Errorf("phase=%v turn=%d, want Player Turn / 2", snap.Phase, snap.Turn)
	}
	// Attack 12 into 10 shield.
	if snap.Player.Health != 98 {
		t.Errorf("health = %d, want 98", snap.Player.Health)
	}
	if snap.Player.Shield != 0 || snap.Player.Energy != 3 || len(snap.Player.Hand) != 5 {
		t.Errorf("new turn shield=%d energy=%d hand=%d", snap.Player.Shield, snap.Player.Energy, len(snap.Player.Hand))
	}
	if snap.Opponent.Status != "Attacked for 12!" {
		t.Errorf("opponent status = %q", snap.Opponent.Status)
	}
	assertConservation(t, b.player, 10)

	// Turn 3 needs the discard recycled.
	b.EndTurn()
	b.AdvanceEnemyTurn()
	if n := len(logger.EventsOfType(log.EventShuffle)); n != 1 {
		t.Errorf("shuffle events = %d, want 1", n)
	}
	if b.player.HandCount() != 5 {
		t.Errorf("turn 3 hand = %d, want 5", b.player.HandCount())
	}
	assertConservation(t, b.player, 10)
}

func TestEnemyKillsPlayer(t *testing.T) {
	b, logger := newTestBattle(t, func(c *Config) { c.PlayerHealth = 12 })
	defer logEvents(t, logger)

	b.EndTurn()
	b.AdvanceEnemyTurn()

	if b.Phase() != PhaseDefeat {
		t.Fatalf("phase = %v, want Defeat", b.Phase())
	}
	// No new turn is started once the battle is over.
	if b.Turn() != 1 || b.player.HandCount() != 0 {
		t.Errorf("turn=%d hand=%d after defeat, want 1 and 0", b.Turn(), b.player.HandCount())
	}
	if n := len(logger.EventsOfType(log.EventDefeat)); n != 1 {
		t.Errorf("defeat events = %d, want 1", n)
	}
	if b.AdvanceEnemyTurn() || b.EndTurn() || b.PlayCard(0) {
		t.Error("command accepted after defeat")
	}
}

func TestRandomCommandsKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		b, err := NewBattle(cfg)
		if err != nil {
			t.Fatalf("seed %d: NewBattle: %v", seed, err)
		}
		cmd := rand.New(rand.NewSource(seed * 31))

		for step := 0; step < 300 && !b.Over(); step++ {
			switch b.Phase() {
			case PhasePlayerTurn:
				if cmd.Intn(4) == 0 {
					b.EndTurn()
				} else {
					b.PlayCard(cmd.Intn(7) - 1)
				}
			case PhaseEnemyTurn:
				b.AdvanceEnemyTurn()
			}

			p, o := b.player, b.opponent
			if p.CardCount() != 10 {
				t.Fatalf("seed %d step %d: card count %d", seed, step, p.CardCount())
			}
			if p.Health < 0 || p.Health > p.MaxHealth || o.Health < 0 || o.Health > o.MaxHealth {
				t.Fatalf("seed %d step %d: health out of range (%d, %d)", seed, step, p.Health, o.Health)
			}
			if p.Energy < 0 || p.Energy > p.MaxEnergy {
				t.Fatalf("seed %d step %d: energy %d", seed, step, p.Energy)
			}
			if p.Shield < 0 || o.Shield < 0 {
				t.Fatalf("seed %d step %d: negative shield", seed, step)
			}
		}
	}
}

func TestSameSeedSameBattle(t *testing.T) {
	run := func() (Snapshot, []log.GameEvent) {
		cfg := DefaultConfig()
		cfg.Seed = 42
		logger := log.NewMemoryLogger()
		cfg.Logger = logger
		b, err := NewBattle(cfg)
		if err != nil {
			t.Fatalf("NewBattle: %v", err)
		}
		for i := 0; i < 6 && !b.Over(); i++ {
			b.PlayCard(0)
			b.PlayCard(0)
			b.EndTurn()
			b.AdvanceEnemyTurn()
		}
		return b.Snapshot(), logger.Events()
	}

	snapA, eventsA := run()
	snapB, eventsB := run()

	if !reflect.DeepEqual(snapA, snapB) {
		t.Errorf("snapshots differ:\n%+v\n%+v", snapA, snapB)
	}
	if !reflect.DeepEqual(eventsA, eventsB) {
		t.Errorf("event logs differ (%d vs %d events)", len(eventsA), len(eventsB))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b, _ := newTestBattle(t, nil)

	snap := b.Snapshot()
	snap.Player.Hand[0].Name = "Tampered"
	snap.Player.Health = 1

	again := b.Snapshot()
	if again.Player.Hand[0].Name == "Tampered" || again.Player.Health != 100 {
		t.Error("mutating a snapshot leaked into the battle")
	}
}

package game

import "testing"

func TestDamageStatusFollowsNamedFlag(t *testing.T) {
	tests := []struct {
		card *Card
		want string
	}{
		{&Card{Name: "Plasma Lance", Cost: 2, Effect: Effect{Kind: EffectDamage, Amount: 25, NamedStatus: true}}, "Dealt 25 damage with a Plasma Lance!"},
		{&Card{Name: CardHeavyBlast, Cost: 2, Effect: Effect{Kind: EffectDamage, Amount: 20}}, "Dealt 20 damage!"},
	}
	for _, tt := range tests {
		rng := newScriptedRand()
		p := NewPlayer("Player", 100, 3, 5, nil, rng)
		o := NewOpponent("Enemy Raider", 80, DefaultEnemyActions(), rng)

		ApplyEffect(tt.card, p, o)

		if p.Status != tt.want {
			t.Errorf("%s status = %q, want %q", tt.card.Name, p.Status, tt.want)
		}
	}
}

func TestApplyEffectCatalog(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		card        string
		wantEnemyHP int
		wantShield  int
		wantHand    int
		wantStatus  string
	}{
		{CardLaserShot, 70, 0, 0, "Dealt 10 damage!"},
		{CardHeavyBlast, 60, 0, 0, "Dealt 20 damage with a Heavy Blast!"},
		{CardDeflectors, 80, 10, 0, "Gained 10 shield."},
		{CardEvasiveManeuver, 80, 5, 1, "Gained 5 shield and drew 1 card."},
	}

	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			card, ok := cat.Lookup(tt.card)
			if !ok {
				t.Fatalf("card %q missing from default catalog", tt.card)
			}
			rng := newScriptedRand()
			p := NewPlayer("Player", 100, 3, 5, makeDeck(damageCard("Filler", 1, 1)), rng)
			o := NewOpponent("Enemy Raider", 80, DefaultEnemyActions(), rng)

			ApplyEffect(card, p, o)

			if o.Health != tt.wantEnemyHP {
				t.Errorf("enemy health = %d, want %d", o.Health, tt.wantEnemyHP)
			}
			if p.Shield != tt.wantShield {
				t.Errorf("player shield = %d, want %d", p.Shield, tt.wantShield)
			}
			if p.HandCount() != tt.wantHand {
				t.Errorf("hand = %d, want %d", p.HandCount(), tt.wantHand)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", p.Status, tt.wantStatus)
			}
		})
	}
}

func TestApplyEffectDamageHitsShieldFirst(t *testing.T) {
	rng := newScriptedRand()
	p := NewPlayer("Player", 100, 3, 5, nil, rng)
	o := NewOpponent("Enemy Raider", 80, DefaultEnemyActions(), rng)
	o.Shield = 8

	res := ApplyEffect(damageCard("Laser", 1, 10), p, o)

	if res.Absorbed != 8 || res.Dealt != 2 {
		t.Errorf("result = %+v, want 8 absorbed / 2 dealt", res)
	}
	if o.Shield != 0 || o.Health != 78 {
		t.Errorf("enemy shield=%d health=%d, want 0 and 78", o.Shield, o.Health)
	}
}

func TestApplyEffectDrawFromEmptyPiles(t *testing.T) {
	cat := DefaultCatalog()
	evasive, _ := cat.Lookup(CardEvasiveManeuver)
	rng := newScriptedRand()
	p := NewPlayer("Player", 100, 3, 5, nil, rng)
	o := NewOpponent("Enemy Raider", 80, DefaultEnemyActions(), rng)

	res := ApplyEffect(evasive, p, o)

	if len(res.Draw.Drawn) != 0 {
		t.Errorf("drew %d cards from empty piles", len(res.Draw.Drawn))
	}
	if p.Shield != 5 {
		t.Errorf("shield = %d, want 5", p.Shield)
	}
}

func TestParseEffectKind(t *testing.T) {
	for _, k := range []EffectKind{EffectDamage, EffectShield, EffectShieldDraw} {
		got, err := ParseEffectKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseEffectKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseEffectKind("heal"); err == nil {
		t.Error("ParseEffectKind(heal) should fail")
	}
}

package game

import (
	"math/rand"
	"testing"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/entities"
	"go.uber.org/zap"
)

const oneGreenArmy = `
troops:
  - name: lone
    soldiers:
      - {type: green, pos: [C, 20], delay: 0.5}
waves:
  - [0]
`

// doubleRules 击毁得分翻倍，生命奖励固定
type doubleRules struct{}

func (doubleRules) KillScore(_ string, points int) int { return points * 2 }
func (doubleRules) LivesBonus(lives int) int           { return 7 }

func newTestWorld(t *testing.T) *entities.World {
	t.Helper()
	atlas, err := config.LoadSpriteConfig("../../data/sprites.yaml")
	if err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	return entities.NewWorld(atlas, nil, nil, rand.New(rand.NewSource(1)), zap.NewNop())
}

func newTestMatch(t *testing.T, rules ScoreRules) *Match {
	t.Helper()
	army, err := config.ParseArmyConfig([]byte(oneGreenArmy))
	if err != nil {
		t.Fatalf("parse army: %v", err)
	}
	return NewMatch(newTestWorld(t), army, rules, 0)
}

func TestMatchStart(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Score, m.Lives = 1234, 1

	m.Start(2.0)

	if m.Score != 0 || m.Lives != DefaultLives {
		t.Errorf("score=%d lives=%d, want 0 and %d", m.Score, m.Lives, DefaultLives)
	}
	if !m.World.Registry.IsRegistered(m.Ship) {
		t.Error("ship should be registered for update")
	}
	if layer, ok := m.World.Registry.LayerOf(m.Ship); !ok || layer != ecs.LayerMain {
		t.Errorf("ship layer = %v (%v), want %v", layer, ok, ecs.LayerMain)
	}
	if m.Ship.Body().Pos != entities.ShipStartPos {
		t.Errorf("ship pos = %v, want %v", m.Ship.Body().Pos, entities.ShipStartPos)
	}
}

func TestMatchShipHit(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Start(0)

	m.ShipHit(1)
	if m.Lives != 2 || !m.Ship.Shielded() {
		t.Fatalf("after hit: lives=%d shielded=%v, want 2 and true", m.Lives, m.Ship.Shielded())
	}
	// 护盾期间再次命中不扣命
	m.ShipHit(1.1)
	if m.Lives != 2 {
		t.Errorf("shielded hit: lives=%d, want 2", m.Lives)
	}
}

func TestMatchShipHitNoLivesLeft(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Start(0)
	m.Lives = 0

	m.ShipHit(1)
	if m.Lives != 0 {
		t.Errorf("lives = %d, want 0", m.Lives)
	}
	if !m.Lost() {
		t.Error("Lost() should be true with no lives")
	}
}

func TestMatchScoring(t *testing.T) {
	tests := []struct {
		name      string
		rules     ScoreRules
		wantKill  int
		wantBonus int
	}{
		{"默认规则", nil, 200, 3 * LivesBonusPerLife},
		{"自定义规则", doubleRules{}, 400, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, tt.rules)
			m.Start(0)
			o, err := m.Factory.Build(config.TroopTemplate{Type: "green", Pos: &config.Point{X: 80, Y: 30}}, 0)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}

			m.OpponentDestroyed(o)
			if m.Score != tt.wantKill {
				t.Errorf("kill score = %d, want %d", m.Score, tt.wantKill)
			}
			if got := m.AwardLivesBonus(); got != tt.wantBonus {
				t.Errorf("AwardLivesBonus() = %d, want %d", got, tt.wantBonus)
			}
			if m.Score != tt.wantKill+tt.wantBonus {
				t.Errorf("score = %d, want %d", m.Score, tt.wantKill+tt.wantBonus)
			}
		})
	}
}

func TestMatchWonAfterLastWave(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Start(0)

	// 第一帧拉取唯一的波次
	m.Step(0.1)
	if m.Won() || m.World.Opponents.Len() != 0 {
		t.Fatal("nothing should be released on the first frame")
	}

	m.Step(0.7)
	if m.World.Opponents.Len() != 1 {
		t.Fatalf("opponents = %d, want 1", m.World.Opponents.Len())
	}
	if m.Won() {
		t.Fatal("Won() with an opponent on the battlefield")
	}

	for _, o := range m.World.Opponents.Snapshot() {
		m.World.Despawn(o)
	}
	m.Step(0.8)
	if !m.Won() {
		t.Error("Won() should be true after the last wave is cleared")
	}
}

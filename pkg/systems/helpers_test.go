package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/entities"
	"go.uber.org/zap"
)

type fakeAudio struct {
	sounds []int
}

func (a *fakeAudio) Play(channel, sound int)        { a.sounds = append(a.sounds, sound) }
func (a *fakeAudio) PlayMusic(track int, loop bool) {}
func (a *fakeAudio) Stop()                          {}

func (a *fakeAudio) count(sound int) int {
	n := 0
	for _, s := range a.sounds {
		if s == sound {
			n++
		}
	}
	return n
}

// recorder 记录战斗结果
type recorder struct {
	shipHits  int
	destroyed []entities.Opponent
	score     int
}

func (r *recorder) ShipHit(t float64) { r.shipHits++ }

func (r *recorder) OpponentDestroyed(o entities.Opponent) {
	r.destroyed = append(r.destroyed, o)
	r.score += o.Points()
}

func newTestWorld(t *testing.T) (*entities.World, *fakeAudio) {
	t.Helper()
	atlas, err := config.LoadSpriteConfig("../../data/sprites.yaml")
	if err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	audio := &fakeAudio{}
	return entities.NewWorld(atlas, audio, nil, rand.New(rand.NewSource(1)), zap.NewNop()), audio
}

func delay(d float64) *float64 {
	return &d
}

func at(x, y float64) *config.Point {
	return &config.Point{X: x, Y: y}
}

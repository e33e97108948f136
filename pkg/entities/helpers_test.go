package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"go.uber.org/zap"
)

type fakeAudio struct {
	sounds []int
	music  []int
	stops  int
}

func (a *fakeAudio) Play(channel, sound int)        { a.sounds = append(a.sounds, sound) }
func (a *fakeAudio) PlayMusic(track int, loop bool) { a.music = append(a.music, track) }
func (a *fakeAudio) Stop()                          { a.stops++ }

func (a *fakeAudio) count(sound int) int {
	n := 0
	for _, s := range a.sounds {
		if s == sound {
			n++
		}
	}
	return n
}

type fakeInput struct {
	pressed map[platform.Key]bool
}

func (in *fakeInput) IsPressed(k platform.Key) bool  { return in.pressed[k] }
func (in *fakeInput) WasPressed(k platform.Key) bool { return in.pressed[k] }

type nopRenderer struct{}

func (nopRenderer) Clear(platform.Color)                                         {}
func (nopRenderer) DrawSprite(utils.Vector, platform.ImageRegion, platform.Color) {}
func (nopRenderer) DrawRect(x, y, w, h float64, c platform.Color)                {}
func (nopRenderer) DrawCircle(x, y, r float64, c platform.Color)                 {}
func (nopRenderer) DrawCircleOutline(x, y, r float64, c platform.Color)          {}
func (nopRenderer) DrawLine(x1, y1, x2, y2 float64, c platform.Color)            {}
func (nopRenderer) DrawPixel(x, y float64, c platform.Color)                     {}
func (nopRenderer) DrawText(x, y float64, s string, c platform.Color)            {}
func (nopRenderer) Remap(from, to platform.Color)                                {}
func (nopRenderer) ResetRemap()                                                  {}

// newTestWorld 使用随包发布的图集创建世界
func newTestWorld(t *testing.T) (*World, *fakeAudio, *fakeInput) {
	t.Helper()
	atlas, err := config.LoadSpriteConfig("../../data/sprites.yaml")
	if err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	audio := &fakeAudio{}
	input := &fakeInput{pressed: map[platform.Key]bool{}}
	return NewWorld(atlas, audio, input, rand.New(rand.NewSource(1)), zap.NewNop()), audio, input
}

// run 以 dt 推进注册表直到时刻 end，返回结束时刻
func run(w *World, start, end, dt float64) float64 {
	t := start
	for t < end {
		t += dt
		w.Registry.AdvanceAll(dt, t)
	}
	return t
}

func point(x, y float64) *config.Point {
	return &config.Point{X: x, Y: y}
}

var _ ecs.Updatable = (*Ship)(nil)

package game

import (
	"testing"
	"time"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
)

type keyInput struct {
	pressed map[platform.Key]bool
}

func (in *keyInput) IsPressed(k platform.Key) bool  { return in.pressed[k] }
func (in *keyInput) WasPressed(k platform.Key) bool { return in.pressed[k] }

// tap 按下一帧后松开
func (in *keyInput) tap(k platform.Key, step func()) {
	in.pressed[k] = true
	step()
	in.pressed[k] = false
}

type recordingAudio struct {
	music []int
	stops int
}

func (a *recordingAudio) Play(int, int)               {}
func (a *recordingAudio) PlayMusic(track int, _ bool) { a.music = append(a.music, track) }
func (a *recordingAudio) Stop()                       { a.stops++ }

// timedScene 记录收到的 dt 和 t
type timedScene struct {
	mockScene
	dts []float64
	ts  []float64
}

func (s *timedScene) Update(dt, t float64) Scene {
	s.dts = append(s.dts, dt)
	s.ts = append(s.ts, t)
	return s
}

func TestFrameClock(t *testing.T) {
	base := time.Unix(1000, 0)
	var c FrameClock

	tests := []struct {
		name   string
		at     time.Duration
		wantDt float64
		wantT  float64
	}{
		{"第一帧 dt 为 0", 0, 0, 0},
		{"正常一帧", 100 * time.Millisecond, 0.1, 0.1},
		{"卡顿被截断", 2 * time.Second, maxFrameStep, 0.1 + maxFrameStep},
		{"时间倒退", time.Second, 0, 0.1 + maxFrameStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, now := c.Tick(base.Add(tt.at))
			if diff := dt - tt.wantDt; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("dt = %v, want %v", dt, tt.wantDt)
			}
			if diff := now - tt.wantT; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("t = %v, want %v", now, tt.wantT)
			}
		})
	}
}

func newTestRunner() (*Runner, *timedScene, *keyInput, *recordingAudio) {
	scene := &timedScene{mockScene: mockScene{phase: PhaseCombat}}
	sm := NewSceneManager(nil)
	sm.Start(scene, 0)
	in := &keyInput{pressed: map[platform.Key]bool{}}
	au := &recordingAudio{}
	return NewRunner(sm, in, au, nil), scene, in, au
}

// TestRunnerPauseExcludesTime 暂停期间的时间不计入 t
func TestRunnerPauseExcludesTime(t *testing.T) {
	r, scene, in, au := newTestRunner()
	base := time.Unix(0, 0)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	r.Step(at(0))
	r.Step(at(100))
	in.tap(platform.KeyPause, func() { r.Step(at(200)) })
	if !r.Paused() || au.stops != 1 {
		t.Fatalf("paused=%v stops=%d, want paused with audio stopped", r.Paused(), au.stops)
	}
	updates := len(scene.ts)

	r.Step(at(5000))
	if len(scene.ts) != updates {
		t.Error("scene should not update while paused")
	}

	in.tap(platform.KeyPause, func() { r.Step(at(10000)) })
	if r.Paused() {
		t.Fatal("second pause press should resume")
	}
	if len(au.music) != 1 || au.music[0] != config.MusicCombat {
		t.Errorf("music = %v, want combat track on resume", au.music)
	}

	r.Step(at(10100))
	last := scene.ts[len(scene.ts)-1]
	// 0.1 + 0 (恢复帧) + 0.1
	if last < 0.2-1e-9 || last > 0.2+1e-9 {
		t.Errorf("t after resume = %v, want 0.2", last)
	}
}

func TestRunnerQuitAndMute(t *testing.T) {
	r, _, in, _ := newTestRunner()
	muted := 0
	r.OnMute(func() { muted++ })

	in.tap(platform.KeyMute, func() {
		if r.Step(time.Unix(0, 0)) {
			t.Error("mute should not quit")
		}
	})
	if muted != 1 {
		t.Errorf("mute handler calls = %d, want 1", muted)
	}

	in.pressed[platform.KeyQuit] = true
	if !r.Step(time.Unix(1, 0)) {
		t.Error("Step() should report quit")
	}
}

func TestRunnerDrawPaused(t *testing.T) {
	r, scene, in, _ := newTestRunner()
	rd := &textRenderer{}
	r.Draw(rd)
	if len(rd.texts) != 0 {
		t.Errorf("texts = %v, want none while running", rd.texts)
	}
	in.tap(platform.KeyPause, func() { r.Step(time.Unix(0, 0)) })
	r.Draw(rd)
	if len(rd.texts) != 1 || rd.texts[0].s != "PAUSED" {
		t.Errorf("texts = %v, want PAUSED", rd.texts)
	}
	if scene.draws != 2 {
		t.Errorf("scene draws = %d, want 2", scene.draws)
	}
}

package game

import (
	"testing"

	"github.com/decker502/lastfighter/pkg/platform"
	"go.uber.org/zap"
)

// mockScene 记录调用的场景，next 为下一帧要返回的场景
type mockScene struct {
	phase   Phase
	next    Scene
	entered []float64
	exits   int
	updates int
	draws   int
}

func (m *mockScene) Phase() Phase    { return m.phase }
func (m *mockScene) Enter(t float64) { m.entered = append(m.entered, t) }
func (m *mockScene) Exit()           { m.exits++ }
func (m *mockScene) Draw(platform.Renderer) {
	m.draws++
}

func (m *mockScene) Update(dt, t float64) Scene {
	m.updates++
	if m.next != nil {
		n := m.next
		m.next = nil
		return n
	}
	return m
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to Phase
		want     bool
	}{
		{"开场到战斗", PhaseIntro, PhaseCombat, true},
		{"战斗到坠毁", PhaseCombat, PhaseShipDestroyed, true},
		{"战斗到离场", PhaseCombat, PhaseShipExiting, true},
		{"坠毁回开场", PhaseShipDestroyed, PhaseIntro, true},
		{"离场到奖励", PhaseShipExiting, PhaseLivesBonus, true},
		{"奖励到胜利", PhaseLivesBonus, PhaseVictory, true},
		{"胜利回开场", PhaseVictory, PhaseIntro, true},
		{"开场不能直接胜利", PhaseIntro, PhaseVictory, false},
		{"战斗不能回开场", PhaseCombat, PhaseIntro, false},
		{"坠毁不能进奖励", PhaseShipDestroyed, PhaseLivesBonus, false},
		{"不能自环", PhaseCombat, PhaseCombat, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	if got := PhaseShipExiting.String(); got != "ship_exiting" {
		t.Errorf("got %q, want %q", got, "ship_exiting")
	}
	if got := Phase(42).String(); got != "unknown" {
		t.Errorf("got %q, want %q", got, "unknown")
	}
}

func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager(zap.NewNop())
	sm.Update(0.016, 0.016)
	sm.Draw(nil)
	if sm.Current() != nil {
		t.Error("Current() should be nil before Start")
	}
}

func TestSceneManagerStart(t *testing.T) {
	sm := NewSceneManager(nil)
	intro := &mockScene{phase: PhaseIntro}
	sm.Start(intro, 1.5)

	if sm.Current() != intro {
		t.Fatal("Start did not set the current scene")
	}
	if len(intro.entered) != 1 || intro.entered[0] != 1.5 {
		t.Errorf("entered = %v, want [1.5]", intro.entered)
	}
}

func TestSceneManagerStay(t *testing.T) {
	sm := NewSceneManager(nil)
	intro := &mockScene{phase: PhaseIntro}
	sm.Start(intro, 0)

	for i := 1; i <= 3; i++ {
		sm.Update(0.1, float64(i)*0.1)
	}
	sm.Draw(nil)

	if intro.updates != 3 || intro.draws != 1 {
		t.Errorf("updates = %d draws = %d, want 3 and 1", intro.updates, intro.draws)
	}
	if intro.exits != 0 {
		t.Errorf("exits = %d, want 0", intro.exits)
	}
}

func TestSceneManagerTransition(t *testing.T) {
	sm := NewSceneManager(nil)
	intro := &mockScene{phase: PhaseIntro}
	combat := &mockScene{phase: PhaseCombat}
	intro.next = combat
	sm.Start(intro, 0)

	sm.Update(0.1, 2.0)

	if sm.Phase() != PhaseCombat {
		t.Fatalf("phase = %v, want %v", sm.Phase(), PhaseCombat)
	}
	if intro.exits != 1 {
		t.Errorf("intro exits = %d, want 1", intro.exits)
	}
	if len(combat.entered) != 1 || combat.entered[0] != 2.0 {
		t.Errorf("combat entered = %v, want [2]", combat.entered)
	}
	// 新场景从下一帧开始更新
	if combat.updates != 0 {
		t.Errorf("combat updates = %d, want 0", combat.updates)
	}
}

func TestSceneManagerRejectsIllegalTransition(t *testing.T) {
	sm := NewSceneManager(nil)
	intro := &mockScene{phase: PhaseIntro}
	victory := &mockScene{phase: PhaseVictory}
	intro.next = victory
	sm.Start(intro, 0)

	sm.Update(0.1, 0.1)

	if sm.Current() != intro {
		t.Errorf("current phase = %v, want %v", sm.Phase(), PhaseIntro)
	}
	if sm.Rejected() != 1 {
		t.Errorf("Rejected() = %d, want 1", sm.Rejected())
	}
	if intro.exits != 0 || len(victory.entered) != 0 {
		t.Error("illegal transition must not exit or enter any scene")
	}
}

func TestSceneManagerFullCycle(t *testing.T) {
	sm := NewSceneManager(nil)
	phases := []Phase{PhaseIntro, PhaseCombat, PhaseShipExiting, PhaseLivesBonus, PhaseVictory, PhaseIntro}
	scenes := make([]*mockScene, len(phases))
	for i, p := range phases {
		scenes[i] = &mockScene{phase: p}
	}
	for i := 0; i+1 < len(scenes); i++ {
		scenes[i].next = scenes[i+1]
	}
	sm.Start(scenes[0], 0)

	for i := 1; i < len(scenes); i++ {
		sm.Update(0.1, float64(i))
		if sm.Current() != scenes[i] {
			t.Fatalf("step %d: phase = %v, want %v", i, sm.Phase(), phases[i])
		}
	}
	if sm.Rejected() != 0 {
		t.Errorf("Rejected() = %d, want 0", sm.Rejected())
	}
}

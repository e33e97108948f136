package game

// Phase 比赛所处的阶段，集合封闭
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseCombat
	PhaseShipDestroyed
	PhaseShipExiting
	PhaseLivesBonus
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseCombat:
		return "combat"
	case PhaseShipDestroyed:
		return "ship_destroyed"
	case PhaseShipExiting:
		return "ship_exiting"
	case PhaseLivesBonus:
		return "lives_bonus"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// transitions 合法的阶段切换表
var transitions = map[Phase][]Phase{
	PhaseIntro:         {PhaseCombat},
	PhaseCombat:        {PhaseShipDestroyed, PhaseShipExiting},
	PhaseShipDestroyed: {PhaseIntro},
	PhaseShipExiting:   {PhaseLivesBonus},
	PhaseLivesBonus:    {PhaseVictory},
	PhaseVictory:       {PhaseIntro},
}

// CanTransition 判断 from -> to 是否为合法切换
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

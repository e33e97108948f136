package components

// HealthComponent 敌机的生命值
type HealthComponent struct {
	Life    int
	MaxLife int
}

// NewHealth 满血
func NewHealth(life int) HealthComponent {
	return HealthComponent{Life: life, MaxLife: life}
}

// Damage 扣除生命
func (h *HealthComponent) Damage(n int) {
	h.Life -= n
}

// Depleted 生命是否耗尽
func (h *HealthComponent) Depleted() bool {
	return h.Life <= 0
}

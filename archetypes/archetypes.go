package archetypes

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Actor,
		components.Object,
		components.Input,
		components.Jump,
		components.Dash,
		components.Sprint,
		components.Cooldowns,
		components.Weapon,
		components.AttackSwing,
	)
	Remote = newArchetype(
		tags.Remote,
		components.Actor,
		components.Remote,
		components.NetInterp,
	)
	Mount = newArchetype(
		tags.Mount,
		components.Actor,
		components.Mount,
	)
	Hostile = newArchetype(
		tags.Hostile,
		components.Object,
		components.Health,
		components.HealthBar,
		components.DamageEvent,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return world.Entry(world.Create(append(a.components, cs...)...))
}

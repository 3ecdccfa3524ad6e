package tags

import "github.com/yohamta/donburi"

var (
	Player  = donburi.NewTag().SetName("Player")
	Remote  = donburi.NewTag().SetName("Remote")
	Mount   = donburi.NewTag().SetName("Mount")
	Hostile = donburi.NewTag().SetName("Hostile")
)

// Resolv tags for collision
const (
	ResolvSolid   = "solid"
	ResolvActor   = "actor"
	ResolvHostile = "hostile"
	ResolvSensor  = "sensor"
)

package model

import "strings"

// Player is the slice of the Sleeper player directory the pipelines need.
type Player struct {
	ID        string
	FirstName string
	LastName  string
}

func (p *Player) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "Unknown Player"
	}
	return name
}

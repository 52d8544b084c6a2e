package domain

// Location is a name plus the pool of roles dealt to innocent players.
// Locations are immutable reference data; one is chosen per round.
type Location struct {
	Name  string
	Roles []string
}

// LocationNames returns the names of all locations in the deck, in deck
// order. This list is public knowledge in Spyfall: the spy uses it to
// guess, innocents use it to calibrate how revealing their answers are.
func LocationNames() []string {
	names := make([]string, 0, len(Locations))
	for _, loc := range Locations {
		names = append(names, loc.Name)
	}
	return names
}

// FindLocation looks up a location by name
func FindLocation(name string) (Location, bool) {
	for _, loc := range Locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return Location{}, false
}

package component

// Active mirrors a scene object's enabled flag. Inactive tanks stay in the
// world so a new round can bring them back, but nothing simulates, draws, or
// frames them.
type Active struct {
	Enabled bool
}

var ActiveComponent = NewComponent[Active]()

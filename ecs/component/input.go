package component

// Input stores per-frame input state for an entity.
type Input struct {
	TogglePressed bool
	ExportPressed bool
}

var InputComponent = NewComponent[Input]()

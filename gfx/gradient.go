package gfx

// GradientKind identifies the type of gradient.
type GradientKind uint8

const (
	GradientLinear GradientKind = 0
	GradientRadial GradientKind = 1
)

// String returns a human-readable name for the gradient kind.
func (k GradientKind) String() string {
	switch k {
	case GradientLinear:
		return "linear"
	case GradientRadial:
		return "radial"
	default:
		return "unknown"
	}
}

// GradientStop is a single color stop (8 bytes).
type GradientStop struct {
	Offset float32 // position along the gradient, 0.0 to 1.0
	Color  Color
}

// Gradient is a packed gradient definition (20 bytes serialized).
// Stops live in a shared stop arena addressed by StopOffset/StopCount.
type Gradient struct {
	Kind       GradientKind
	StopCount  uint8
	StopOffset uint16
	Angle      float32 // linear gradients, radians
	CenterX    float32 // radial gradients
	CenterY    float32
	Radius     float32
}

package math

// Color is an RGBA value with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon Precision constant used by Eq and NewVectorPolar.
const (
	Epsilon = 1e-9
)

var (
	// ErrDivisionByZero is returned by Div when the scalar is zero.
	ErrDivisionByZero = errors.New("vector cannot be divided by zero")
	// ErrUndefinedOperation is returned when a direction is requested from a zero vector.
	ErrUndefinedOperation = errors.New("operation undefined for a zero-length vector")
)

// Vector2D represents a 2D vector or point in cartesian space.
// Fields are public because they are plain data: v := Vector2D{1, 2}
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the zero vector.
var Zero = Vector2D{}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar creates a new Vector2D from polar coordinates.
// theta is in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	// Handle standard floating point precision issues near zero
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, every operation returns a new Vector2D.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// A zero scalar yields an Inf vector together with ErrDivisionByZero.
func (v Vector2D) Div(scalar float64) (Vector2D, error) {
	if scalar == 0 {
		return Vector2D{math.Inf(1), math.Inf(1)}, ErrDivisionByZero
	}
	return Vector2D{v.X / scalar, v.Y / scalar}, nil
}

// ---------------------------------------------------------------------
// Magnitude and Direction
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// This is faster than Len() as it avoids the square root. Use for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Unit returns the unit vector in the same direction.
// The zero vector has no direction: ErrUndefinedOperation.
func (v Vector2D) Unit() (Vector2D, error) {
	l := v.Len()
	if l == 0 {
		return Zero, fmt.Errorf("unit of %s: %w", v, ErrUndefinedOperation)
	}
	return Vector2D{v.X / l, v.Y / l}, nil
}

// WithMagnitude returns a vector with the same direction and the given magnitude.
func (v Vector2D) WithMagnitude(m float64) (Vector2D, error) {
	u, err := v.Unit()
	if err != nil {
		return Zero, err
	}
	return u.Mul(m), nil
}

// Direction returns the angle of the vector in radians, measured as atan2(X, Y).
// The argument order is swapped compared to the usual atan2(Y, X) convention.
func (v Vector2D) Direction() float64 {
	return math.Atan2(v.X, v.Y)
}

// WithDirection returns a vector pointing at angle (radians, from the X axis)
// that keeps the current magnitude.
func (v Vector2D) WithDirection(angle float64) Vector2D {
	m := v.Len()
	return Vector2D{math.Cos(angle) * m, math.Sin(angle) * m}
}

// LimitedTo clamps the magnitude to max, keeping the direction.
// The zero vector stays the zero vector.
func (v Vector2D) LimitedTo(max float64) Vector2D {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vector2D{v.X / l, v.Y / l}.Mul(math.Min(l, max))
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

package common

import "math"

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec3 is a 3D vector. Gameplay happens on the XZ plane with Y up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// CrossY is the Y component of v × o. Positive means o lies to the
// right of v when looking down the Y axis.
func (v Vec3) CrossY(o Vec3) float64 {
	return v.Z*o.X - v.X*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// FlatLen is the length of the XZ projection.
func (v Vec3) FlatLen() float64 {
	return math.Hypot(v.X, v.Z)
}

// FlatDist is the XZ-plane distance between two points.
func FlatDist(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// Normalized returns v scaled to unit length, or the zero vector.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Flat zeroes the Y component.
func (v Vec3) Flat() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// RightOf returns the vector 90° clockwise from v on the XZ plane
// (the right hand of something facing along v).
func (v Vec3) RightOf() Vec3 {
	return Vec3{v.Z, 0, -v.X}
}

// HeadingVec converts a heading angle to a unit forward vector.
// Heading 0 faces +Z, increasing clockwise when viewed from above.
func HeadingVec(h float64) Vec3 {
	return Vec3{math.Sin(h), 0, math.Cos(h)}
}

// VecHeading is the inverse of HeadingVec for XZ-plane vectors.
func VecHeading(v Vec3) float64 {
	return math.Atan2(v.X, v.Z)
}

// RotateY rotates v around the Y axis by angle radians (clockwise from
// above, matching HeadingVec).
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

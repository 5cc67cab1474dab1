package common

import "math"

// Vec3 is a world-space point or direction. Tanks live on the XZ plane with Y up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Dist(o Vec3) float64  { return v.Sub(o).Len() }

// XZ drops the height component.
func (v Vec3) XZ() Vec3 { return Vec3{X: v.X, Z: v.Z} }

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Forward returns the unit heading on the ground plane for a yaw in radians.
// Yaw zero faces +Z; positive yaw turns counter-clockwise seen from above.
func Forward(yaw float64) Vec3 {
	return Vec3{X: -math.Sin(yaw), Z: math.Cos(yaw)}
}

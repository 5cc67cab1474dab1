package camera

import (
	"math"

	"github.com/Ali-Parandeh/tanks/common"
)

const minSmoothTime = 0.0001

// SmoothDamp eases current toward target like a critically damped spring.
// velocity is read and written so the motion stays continuous across calls.
// The result never passes the target.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if velocity == nil {
		var v float64
		velocity = &v
	}
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)

	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	if (target-current > 0) == (out > target) {
		out = target
		*velocity = 0
	}
	return out
}

// SmoothDampVec3 applies SmoothDamp to each axis with a shared velocity vector.
func SmoothDampVec3(current, target common.Vec3, velocity *common.Vec3, smoothTime, dt float64) common.Vec3 {
	if velocity == nil {
		velocity = &common.Vec3{}
	}
	return common.Vec3{
		X: SmoothDamp(current.X, target.X, &velocity.X, smoothTime, dt),
		Y: SmoothDamp(current.Y, target.Y, &velocity.Y, smoothTime, dt),
		Z: SmoothDamp(current.Z, target.Z, &velocity.Z, smoothTime, dt),
	}
}

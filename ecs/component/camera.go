package component

import "github.com/Ali-Parandeh/tanks/camera"

type Camera struct {
	Rig   *camera.Rig
	State camera.State
}

var CameraComponent = NewComponent[Camera]()

// CameraSnapRequest asks the camera system to jump straight to its framing.
type CameraSnapRequest struct{}

var CameraSnapRequestComponent = NewComponent[CameraSnapRequest]()

package component

type TankTag struct{}

var TankTagComponent = NewComponent[TankTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// CameraTarget marks entities the dynamic camera keeps in frame.
type CameraTarget struct{}

var CameraTargetComponent = NewComponent[CameraTarget]()

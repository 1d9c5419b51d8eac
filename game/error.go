package game

const (
	ErrorNegativeFrameDelay  = "frame delay must be >= 0 ticks, got %d"
	ErrorDecodeConfig        = "unable to decode configuration: %v"
	ErrorEncodeConfig        = "unable to encode configuration: %v"
	ErrorRendererContextLost = "renderer context lost"
	ErrorRaycastPanicked     = "scene query panicked: %v"
	ErrorSchedulerTickPanic  = "tick panicked: %v"
	ErrorInvalidFrameRate    = "frame rate must be > 0 Hz, got %v"
	ErrorInvalidHexColor     = "invalid hex colour %q"
)

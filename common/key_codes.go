package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65  // A key (ASCII): force assembled state
	KeyE     = 69  // E key (ASCII): force exploded state
	KeyP     = 80  // P key (ASCII): toggle profiler output
	KeySpace = 32  // Spacebar (ASCII): toggle state
	KeyEsc   = 256 // Escape key (GLFW): quit
)

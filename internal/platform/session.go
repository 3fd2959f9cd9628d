package platform

import (
	"os"
	"runtime"
)

// Display server types.
const (
	DisplayServerWayland = "wayland"
	DisplayServerX11     = "x11"
	DisplayServerUnknown = "unknown"
)

// detectDisplayServer tells Wayland from X11 using the session environment.
func detectDisplayServer(getenv func(string) string) string {
	if getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if getenv("XDG_SESSION_TYPE") == DisplayServerWayland {
		return DisplayServerWayland
	}
	if getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	if getenv("XDG_SESSION_TYPE") == DisplayServerX11 {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// CheckCapability reports whether pointer input can be synthesized in the
// current session. It should be called before starting the jiggler so the
// user gets early feedback instead of a loop of failed ticks.
func CheckCapability() Capability {
	return checkCapability(runtime.GOOS, os.Getenv)
}

func checkCapability(goos string, getenv func(string) string) Capability {
	switch goos {
	case "darwin":
		return Capability{
			CanSimulate: true,
			Instructions: "If the cursor does not move, enable Accessibility for your terminal in " +
				"System Settings, Privacy and Security, Accessibility.",
		}
	case "windows":
		return Capability{CanSimulate: true}
	case "linux", "freebsd", "openbsd", "netbsd":
		switch detectDisplayServer(getenv) {
		case DisplayServerX11:
			return Capability{CanSimulate: true}
		case DisplayServerWayland:
			// XWayland exposes DISPLAY but cannot warp the pointer of native windows.
			return Capability{
				CanSimulate:  false,
				ErrorMessage: "Wayland session detected; synthetic pointer moves are not delivered",
				Instructions: "Log in with an X11 session (e.g. \"GNOME on Xorg\") and run jiggle again.",
			}
		default:
			return Capability{
				CanSimulate:  false,
				ErrorMessage: "no graphical session found (DISPLAY is not set)",
				Instructions: "Run jiggle from inside your desktop session, or export DISPLAY.",
			}
		}
	default:
		return Capability{
			CanSimulate:  false,
			ErrorMessage: "unsupported platform: " + goos,
		}
	}
}

//go:build !darwin && !windows

package opener

func platformOpener() *CommandOpener {
	return &CommandOpener{Command: "xdg-open"}
}

//go:build darwin

package opener

func platformOpener() *CommandOpener {
	return &CommandOpener{Command: "open"}
}

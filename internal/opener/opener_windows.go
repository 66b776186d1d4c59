//go:build windows

package opener

func platformOpener() *CommandOpener {
	return &CommandOpener{Command: "rundll32", Args: []string{"url.dll,FileProtocolHandler"}}
}

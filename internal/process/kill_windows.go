//go:build windows

// Package process terminates the headless browser and every helper process
// it spawned.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills pid and its child tree with taskkill.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}

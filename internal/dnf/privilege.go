package dnf

import "os/exec"

// sudoCached reports whether sudo credentials are already cached, meaning a
// privileged command can run with -n and no password prompt.
func sudoCached() bool {
	return exec.Command("sudo", "-n", "true").Run() == nil
}

// SPDX-License-Identifier: MIT

package spparms

// ResetForTest clears the process-wide table. Test-only.
func ResetForTest() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

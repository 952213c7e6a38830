package puzzle

import "strings"

// ComputerPassword opens the computer lock and with it the door.
const ComputerPassword = "lome"

// CheckPassword reports whether input opens the computer lock. Surrounding
// whitespace is ignored.
func CheckPassword(input string) bool {
	return strings.TrimSpace(input) == ComputerPassword
}

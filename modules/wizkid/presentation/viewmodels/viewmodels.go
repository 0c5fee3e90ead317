package viewmodels

import "strings"

type Wizkid struct {
	ID        string
	Name      string
	Role      string
	Initials  string
	Age       int
	BirthDate string
	Email     string
	Phone     string
	PhotoURL  string
	Fired     bool
}

// Initials derives up to two letters from the first two whitespace
// separated name tokens.
func Initials(name string) string {
	var b strings.Builder
	for i, token := range strings.Fields(name) {
		if i == 2 {
			break
		}
		runes := []rune(token)
		b.WriteString(strings.ToUpper(string(runes[0])))
	}
	return b.String()
}

package domain

// MatchUser resolves a login name pair against the directory.
//
// The comparison is exact and case-sensitive; the first matching record wins.
// When nothing matches, a guest identity is fabricated from the submitted
// names with RoleUser and no id. No secret is checked: identity is a name
// lookup, not authentication.
func MatchUser(users []User, lastname, firstname string) (User, bool) {
	for _, u := range users {
		if u.Lastname == lastname && u.Firstname == firstname {
			return u, true
		}
	}
	return User{Lastname: lastname, Firstname: firstname, Role: RoleUser}, false
}

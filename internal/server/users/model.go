package users

// User is a registered account as persisted.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	PhotoPath    string `json:"photo_path"`
}

// PublicUser is the projection of User that may leave the server.
type PublicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	PhotoPath string `json:"photo_path"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Username:  u.Username,
		PhotoPath: u.PhotoPath,
	}
}

// FullName is "name lastname", the string name searches match against.
func (u User) FullName() string {
	return u.Name + " " + u.Lastname
}

func PublicAll(list []User) []PublicUser {
	out := make([]PublicUser, 0, len(list))
	for _, u := range list {
		out = append(out, u.Public())
	}
	return out
}

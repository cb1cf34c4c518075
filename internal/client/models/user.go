// Package models holds the client-side view of server responses.
package models

import "fmt"

// User is a public user record as returned by the server.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	PhotoPath string `json:"photo_path"`
}

func (u User) FullName() string {
	return u.Name + " " + u.Lastname
}

func (u User) String() string {
	return fmt.Sprintf("%s (@%s)", u.FullName(), u.Username)
}

// Profile is the caller's record plus their direct friends.
type Profile struct {
	Me      User   `json:"me"`
	Friends []User `json:"friends"`
}

// Path is a shortest chain of user ids, endpoints included.
type Path struct {
	Exists bool     `json:"exists"`
	Path   []string `json:"path"`
}

// Stats summarizes the friendship graph. The id fields are nil on an empty
// graph.
type Stats struct {
	MaxUserID  *string `json:"max_user_id"`
	MaxFriends int     `json:"max_friends"`
	MinUserID  *string `json:"min_user_id"`
	MinFriends int     `json:"min_friends"`
	AvgFriends float64 `json:"avg_friends"`
}

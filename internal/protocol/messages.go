package protocol

// MessageType names a request kind. The set is closed: anything not listed
// here is answered with an unknown type error.
type MessageType string

const (
	TypePing              MessageType = "PING"
	TypeRegister          MessageType = "REGISTER"
	TypeLogin             MessageType = "LOGIN"
	TypeSearchUser        MessageType = "SEARCH_USER"
	TypeGetUserByUsername MessageType = "GET_USER_BY_USERNAME"
	TypeGetMyProfile      MessageType = "GET_MY_PROFILE"
	TypeAddFriend         MessageType = "ADD_FRIEND"
	TypeRemoveFriend      MessageType = "REMOVE_FRIEND"
	TypePathBetween       MessageType = "PATH_BETWEEN"
	TypeGraphStats        MessageType = "GRAPH_STATS"
	TypeListUsers         MessageType = "LIST_USERS"
)

// Request payloads. The validate tags are enforced by the server router;
// maxbytes limits the UTF-8 length in bytes.

type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Lastname string `json:"lastname" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SearchPayload struct {
	Query string `json:"query"`
}

type UsernamePayload struct {
	Username string `json:"username" validate:"required"`
}

type UserIDPayload struct {
	UserID string `json:"user_id" validate:"required"`
}

type FriendPairPayload struct {
	A string `json:"a" validate:"required"`
	B string `json:"b" validate:"required"`
}

type PathPayload struct {
	Src string `json:"src" validate:"required"`
	Dst string `json:"dst" validate:"required"`
}

package user

// UsersResponse is the admin directory payload.
type UsersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

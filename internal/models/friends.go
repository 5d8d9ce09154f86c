package models

// FriendListResponse is the body of GET friends. Unlike every other endpoint
// this one is not wrapped in a {data:...} envelope; the inconsistency is part
// of the backend contract and is preserved here deliberately.
type FriendListResponse struct {
	Friends []FriendSimple `json:"friends"`
}

// FriendSimple is the minimal friend record
type FriendSimple struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

package common

// MaxPartySize is the number of party slots a user has. Slots are numbered
// 1..MaxPartySize.
const MaxPartySize = 6

// Fixed keys of the durable key-value store.
const (
	KeyUsers       = "users"
	KeyFavorites   = "favorites"
	KeyParty       = "party"
	KeyCurrentUser = "currentUser"
)

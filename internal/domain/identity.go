package domain

// Identity is the signed-in user's profile as persisted under the "user" key.
// The bearer credential lives under its own key; the session layer guarantees
// the two are written and removed together.
type Identity struct {
	Name string `json:"name"`
}

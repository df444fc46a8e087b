package model

// UserProfile is the signed-in user as the client knows it.
// AvatarRef is opaque: it is only ever appended to the avatar base URL.
type UserProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarRef string `json:"avatar"`
}

// ProfilePatch is a partial UserProfile. Nil fields are absent and left untouched on merge.
type ProfilePatch struct {
	Name      *string
	Email     *string
	AvatarRef *string
}

// Apply returns a copy of user with every present field of p merged in.
func (p ProfilePatch) Apply(user UserProfile) UserProfile {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.AvatarRef != nil {
		user.AvatarRef = *p.AvatarRef
	}
	return user
}

// Empty reports whether the patch carries no fields.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.AvatarRef == nil
}

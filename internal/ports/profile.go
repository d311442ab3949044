package ports

import "context"

// Profile is the current user as supplied by the host application.
// Real is set when an operator acts on behalf of another user.
type Profile struct {
	UserID string   `json:"userId"`
	Login  string   `json:"login"`
	Name   string   `json:"name"`
	Real   *Profile `json:"real,omitempty"`
}

// Split separates the effective user from the impersonating one. Neither input nor output is shared.
func (p Profile) Split() (user Profile, real *Profile) {
	user = p
	user.Real = nil
	if p.Real != nil {
		r := *p.Real
		r.Real = nil
		real = &r
	}
	return user, real
}

type profileKey struct{}

func WithProfile(ctx context.Context, profile Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

func ProfileFromContext(ctx context.Context) (Profile, bool) {
	if ctx == nil {
		return Profile{}, false
	}
	profile, ok := ctx.Value(profileKey{}).(Profile)
	return profile, ok
}

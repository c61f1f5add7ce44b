package system

import "errors"

// ErrActorNotFound reports a follower whose actor handle no longer resolves.
var ErrActorNotFound = errors.New("system: actor not found")

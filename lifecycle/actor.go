package lifecycle

import "github.com/lostfound-hub/api-go/models"

// ActorContext identifies the user performing an engine operation. It is
// passed explicitly into every operation; the engine never reads ambient
// session state.
type ActorContext struct {
	UserID uint
	Role   string
}

func (a ActorContext) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

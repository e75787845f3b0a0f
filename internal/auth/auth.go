// Package auth implements the administrator session gate.  Two mutually
// exclusive strategies satisfy Service: StoreService consults the USERS
// table directly and RemoteService forwards every call to the upstream auth
// microservice.  AUTH_MODE picks one at startup.
//
// The session is a single flag per user with no token and no expiry; a
// second login simply re-flips it.
package auth

import (
	"context"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/result"
)

// Service is the auth contract shared by both strategies.
type Service interface {
	// Login checks credentials and marks the session active.  Data carries
	// {"user": model.UserInfo} on success.
	Login(ctx context.Context, username, password string) result.Result
	// ValidateSession reports the session flag.  A known user always gets a
	// successful 200 envelope; Data is a model.SessionInfo and callers must
	// inspect IsActive.
	ValidateSession(ctx context.Context, username string) result.Result
	// Logout marks the session inactive.
	Logout(ctx context.Context, username string) result.Result
}

// Common messages.
const (
	MsgLoginOK            = "Autenticación exitosa"
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgUserNotFound       = "Usuario no encontrado"
	MsgSessionActive      = "Sesión activa"
	MsgSessionInactive    = "Sesión inactiva"
	MsgLogoutOK           = "Sesión cerrada exitosamente"
	MsgUnavailable        = "Servicio de autenticación no disponible"
	MsgInternal           = "Error interno del servidor"
)

// IsActive extracts the session flag from a ValidateSession result.  Any
// failed envelope, or a payload of an unexpected shape, is inactive.
func IsActive(r result.Result) bool {
	if !r.Success {
		return false
	}
	switch d := r.Data.(type) {
	case model.SessionInfo:
		return d.IsActive
	case *model.SessionInfo:
		return d != nil && d.IsActive
	}
	return false
}

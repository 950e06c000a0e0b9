package state

import identity "listly/internal/identity/models"

// AuthState is the client's view of the session.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *identity.User
}

// InitialAuth starts loading until the first auth event lands.
func InitialAuth() AuthState {
	return AuthState{Loading: true}
}

// ReduceAuth folds one event over the auth snapshot.
func ReduceAuth(state AuthState, event Event) AuthState {
	switch e := event.(type) {
	case UserLoadedEvent:
		state.IsAuthenticated = true
		state.Loading = false
		state.User = e.User
		return state
	case LoginSuccessEvent:
		state.Token = e.Token
		state.IsAuthenticated = true
		state.Loading = false
		return state
	case RegisterSuccessEvent:
		state.Token = e.Token
		state.IsAuthenticated = true
		state.Loading = false
		return state
	case LoginFailEvent, RegisterFailEvent, AuthErrorEvent, LogoutEvent:
		return AuthState{Loading: false}
	default:
		return state
	}
}

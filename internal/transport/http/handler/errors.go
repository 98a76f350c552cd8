package handler

const (
	errInternalServer     = "Internal server error"
	errEmailTaken         = "a user with that email is already registered"
	errUserNotFound       = "user not found"
	errNotActivated       = "account not activated"
	errWrongPassword      = "wrong password"
	errInvalidConfirmCode = "invalid confirmation code"
)

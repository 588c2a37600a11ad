package utils

import (
	"net/http"

	"tabi/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetUserEmailFromRequest(r *http.Request) string {
	email, ok := r.Context().Value(globals.UserEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/livedreligion/wheresreligion/internal/session"
)

const (
	headerUserID       = "X-User-Id"
	headerUserName     = "X-User-Name"
	headerAdminPasskey = "X-Admin-Passkey"
	headerViewID       = "X-View-Id"
)

// sessionFromHeader builds the session of one request. The passkey only
// grants admin rights when one is configured and the header matches it.
func sessionFromHeader(header http.Header, adminPasskey string) session.Session {
	sess := session.Session{
		UserID: header.Get(headerUserID),
		Name:   header.Get(headerUserName),
	}
	if given := header.Get(headerAdminPasskey); adminPasskey != "" && given != "" {
		sess.Admin = subtle.ConstantTimeCompare([]byte(given), []byte(adminPasskey)) == 1
	}
	return sess
}

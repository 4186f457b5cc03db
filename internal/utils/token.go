package utils

import (
	"encoding/base64" // Token encoding
	"strconv"         // Millisecond formatting
	"time"            // Issue time
)

// BasicToken returns the unsigned dashboard token: base64("username:unixMillis").
// It identifies a session for display purposes only and proves nothing.
func BasicToken(username string, issuedAt time.Time) string {
	raw := username + ":" + strconv.FormatInt(issuedAt.UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

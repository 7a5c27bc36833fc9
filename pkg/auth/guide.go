package auth

import (
	"fmt"
	"io"
)

// CookieGuide explains how to copy the sessionid cookie out of a browser
func CookieGuide(w io.Writer) {
	fmt.Fprint(w, `How to get your Instagram session ID

  1. Log in to https://www.instagram.com in your browser
  2. Open the developer tools (F12, or Cmd+Option+I on macOS)
  3. Chrome/Edge: Application > Cookies > https://www.instagram.com
     Firefox:     Storage > Cookies > https://www.instagram.com
     Safari:      Storage > Cookies (enable the Develop menu first)
  4. Copy the value of the "sessionid" cookie
     (optionally also "csrftoken")

The session ID grants full access to your account. Keep it private and
log out of the browser session to revoke it.

`)
}

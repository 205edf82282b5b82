package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// loginPage is a static page with the same test ids as the target shop: a
// login icon opening a form, and an avatar with the user's initials after a
// successful login.
const loginPage = `<!DOCTYPE html>
<html>
<head><title>boutique</title></head>
<body>
  <button data-testid="login-icon" onclick="document.getElementById('form').style.display='block'">Login</button>
  <div id="form" style="display:none">
    <input data-testid="login-email" type="email">
    <input data-testid="login-password" type="password">
    <button data-testid="login-button" onclick="login()">Sign in</button>
  </div>
  <div id="header"></div>
  <script>
    const accounts = {"brad@pitt.de": ["123456", "BP"], "max@mail.de": ["12345", "MM"]};
    function login() {
      const email = document.querySelector('[data-testid="login-email"]').value;
      const password = document.querySelector('[data-testid="login-password"]').value;
      const acct = accounts[email];
      if (!acct || acct[0] !== password) { return; }
      setTimeout(() => {
        const avatar = document.createElement('span');
        avatar.setAttribute('data-testid', 'user-avatar');
        avatar.textContent = acct[1];
        document.getElementById('header').appendChild(avatar);
        document.getElementById('form').style.display = 'none';
      }, 50);
    }
  </script>
</body>
</html>
`

// NewLoginServer serves loginPage at "/" for real-browser driver tests.
func NewLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(loginPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

package handler

import (
	"bytes"
	"html/template"

	"github.com/labstack/echo/v4"
)

// pageData feeds the minimal server-rendered pages.
type pageData struct {
	Username string
	Error    string
	Token    string
}

var pages = template.Must(template.New("pages").Parse(pagesHTML))

func renderPage(c echo.Context, code int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

const pagesHTML = `
{{define "landing"}}<!DOCTYPE html>
<html><head><title>fotobox</title></head><body>
<h1>fotobox</h1>
<p><a href="/login">Log in</a> or <a href="/register">register</a> to start capturing.</p>
</body></html>{{end}}

{{define "index"}}<!DOCTYPE html>
<html><head><title>fotobox</title></head><body>
<h1>Hello, {{.Username}}</h1>
<p><a href="/galeria">Gallery</a> | <a href="/logout">Log out</a></p>
<video id="video" autoplay></video>
<button id="capture">Capture</button>
<canvas id="canvas" style="display:none"></canvas>
</body></html>{{end}}

{{define "register"}}<!DOCTYPE html>
<html><head><title>Register</title></head><body>
<h1>Register</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/register">
<input name="username" placeholder="username" required>
<input name="email" type="email" placeholder="email" required>
<input name="password" type="password" placeholder="password" required>
<button type="submit">Register</button>
</form>
</body></html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html><head><title>Log in</title></head><body>
<h1>Log in</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/login">
<input name="email" type="email" placeholder="email" required>
<input name="password" type="password" placeholder="password" required>
<button type="submit">Log in</button>
</form>
<p><a href="/forgot_password">Forgot your password?</a></p>
</body></html>{{end}}

{{define "forgot_password"}}<!DOCTYPE html>
<html><head><title>Recover password</title></head><body>
<h1>Recover password</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/forgot_password">
<input name="email" type="email" placeholder="email" required>
<button type="submit">Send recovery mail</button>
</form>
</body></html>{{end}}

{{define "reset_password"}}<!DOCTYPE html>
<html><head><title>Reset password</title></head><body>
<h1>Choose a new password</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/reset_password/{{.Token}}">
<input name="password" type="password" placeholder="new password" required>
<button type="submit">Reset password</button>
</form>
</body></html>{{end}}
`

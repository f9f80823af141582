package web

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

var loginTmpl = tmpl(`<h1>Login</h1>
	<form method="post" action="login" style="max-width: 20rem; margin: auto;">
		<input type="hidden" name="redirect" value="{{ .Redirect }}">
		<div class="form-group">
			<label>Access code</label>
			<input type="password" class="form-control" name="code" required autofocus>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
	</form>`)

type loginData struct {
	*context
	Redirect string
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var redirect = req.URL.Query().Get("redirect")

	if req.Method == http.MethodPost {

		redirect = req.PostFormValue("redirect")

		err := ctx.Login(req.PostFormValue("code"))
		if err == nil {
			ctx.SeeOther("%s", localPath(redirect))
			return nil
		}
		ctx.Danger(err)
		// keep the redirect target for the next attempt
	}

	return loginTmpl.Execute(w, &loginData{
		context:  ctx,
		Redirect: redirect,
	})
}

// localPath keeps the post-login redirect on this site.
func localPath(path string) string {
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return path
	}
	return "/"
}

package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// upgrade re-verifies a code from a guest session. Only the user code is
// accepted, everything else leaves the guest session as it is.
func upgrade(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.Upgrade(req.PostFormValue("code")); err == nil {
		ctx.Success("Editing unlocked")
	} else {
		ctx.Danger(err)
	}

	if back := req.Referer(); back != "" {
		ctx.SeeOther("%s", back)
	} else {
		ctx.SeeOther("/")
	}
	return nil
}

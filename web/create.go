package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func createBoard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	id, err := ctx.db.CreateBoard(req.PostFormValue("project"))
	if err != nil {
		return err
	}

	ctx.SeeOther("/board/%s", id)
	return nil
}

func createProject(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	id, err := ctx.db.CreateProject()
	if err != nil {
		return err
	}

	ctx.SeeOther("/project/%s", id)
	return nil
}

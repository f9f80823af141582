package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/boardroom/core"
)

var projectTmpl = tmpl(`
	<p class="mt-3">
		<a href=".">&laquo; Workspace</a>
	</p>

	{{ if .IsUser }}

		<form class="form-inline" method="post" action="project/{{ .Project.ID }}/rename">
			<input type="text" class="form-control form-control-lg mr-2" name="name" value="{{ .Project.Name }}">
			<button type="submit" class="btn btn-sm btn-outline-secondary">Rename</button>
		</form>

		<form method="post" action="project/{{ .Project.ID }}/describe">
			<div class="form-group mt-2 mb-2">
				<textarea class="form-control" name="description" rows="3" placeholder="Description (Markdown)">{{ .Project.Description }}</textarea>
			</div>
			<button type="submit" class="btn btn-sm btn-outline-secondary">Save description</button>
		</form>

		<p class="mt-3">
			<form class="form-inline" style="display: inline-block;" method="post" action="create-board">
				<input type="hidden" name="project" value="{{ .Project.ID }}">
				<button type="submit" class="btn btn-primary btn-sm">New board</button>
			</form>
			<form class="form-inline ml-1" style="display: inline-block;" method="post" action="project/{{ .Project.ID }}/delete" onsubmit="return confirm('Delete this project? Its boards move back to the workspace.');">
				<button type="submit" class="btn btn-outline-danger btn-sm">Delete project</button>
			</form>
		</p>

	{{ else }}

		<h1>{{ .Project.Name }}</h1>

		{{ Markdown .Project.Description }}

	{{ end }}

	<h2>Boards</h2>

	{{ template "boardTable" . }}`)

type projectData struct {
	*context
	Project     core.DBProject
	Boards      []core.DBBoard
	MoveTargets []core.ProjectInfo
}

func project(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	project, err := ctx.db.OpenProject(params.ByName("id"))
	if err != nil {
		return err
	}

	boards, err := ctx.db.ProjectBoardsFor(ctx.Role, project.ID())
	if err != nil {
		return err
	}

	moveTargets, err := ctx.db.ProjectsFor(ctx.Role)
	if err != nil {
		return err
	}

	return projectTmpl.Execute(w, &projectData{
		context:     ctx,
		Project:     project,
		Boards:      boards,
		MoveTargets: moveTargets,
	})
}

func renameProject(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	project, err := ctx.db.OpenProject(params.ByName("id"))
	if err != nil {
		return err
	}

	if err := ctx.db.RenameProject(project, req.PostFormValue("name")); err != nil {
		ctx.Danger(err)
	}

	ctx.SeeOther("/project/%s", project.ID())
	return nil
}

func describeProject(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	project, err := ctx.db.OpenProject(params.ByName("id"))
	if err != nil {
		return err
	}

	if err := ctx.db.DescribeProject(project, req.PostFormValue("description")); err != nil {
		ctx.Danger(err)
	} else {
		ctx.Success("Description saved")
	}

	ctx.SeeOther("/project/%s", project.ID())
	return nil
}

func deleteProject(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	project, err := ctx.db.OpenProject(params.ByName("id"))
	if err != nil {
		return err
	}

	if err := ctx.db.RemoveProject(project); err != nil {
		return err
	}

	ctx.Success("Project %s deleted, its boards moved back to the workspace", project.Name())
	ctx.SeeOther("/")
	return nil
}

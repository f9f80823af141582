package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/boardroom/core"
)

var homeTmpl = tmpl(`<h1>Workspace</h1>

	{{ if .IsUser }}
		<p>
			<form class="form-inline" style="display: inline-block;" method="post" action="create-board">
				<button type="submit" class="btn btn-primary btn-sm">New board</button>
			</form>
			<form class="form-inline ml-1" style="display: inline-block;" method="post" action="create-project">
				<button type="submit" class="btn btn-secondary btn-sm">New project</button>
			</form>
		</p>
	{{ end }}

	<h2>Projects</h2>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Project</th>
				<th></th>
				<th>Boards</th>
				<th>Changed</th>
			</tr>
		</thead>
		<tbody>
			{{ $top := . }}
			{{ range .Projects }}
				<tr>
					<td>
						<a href="project/{{ .ID }}">{{ .Name }}</a>
					</td>
					<td class="text-muted">{{ Excerpt .Description }}</td>
					<td>{{ .BoardCount }}</td>
					<td>{{ $top.FormatDateTime .TsChanged }}</td>
				</tr>
			{{ else }}
				<tr>
					<td colspan="4" class="text-muted">No projects yet.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>

	<h2>Boards</h2>

	{{ template "boardTable" . }}`)

type homeData struct {
	*context
	Projects    []core.ProjectInfo
	Boards      []core.DBBoard // boards outside any project
	MoveTargets []core.ProjectInfo
}

func home(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	projects, err := ctx.db.ProjectsFor(ctx.Role)
	if err != nil {
		return err
	}

	boards, err := ctx.db.UnassignedBoardsFor(ctx.Role)
	if err != nil {
		return err
	}

	return homeTmpl.Execute(w, &homeData{
		context:     ctx,
		Projects:    projects,
		Boards:      boards,
		MoveTargets: projects,
	})
}

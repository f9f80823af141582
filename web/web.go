// Package web serves the workspace pages and actions.
//
// The request gate in core has already turned away unauthenticated
// requests for everything but the login page. Mutating handlers still
// re-check the role at their boundary, hiding a button is not access
// control.
package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/boardroom/core"
	"github.com/wansing/boardroom/util"
)

// we need the CoreDB in the handlers
type context struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
}

func middleware(db *core.CoreDB, prefix string, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Prefix:  prefix + "/",
			Request: db.NewRequest(w, req),
			db:      db,
		}
		defer ctx.Cleanup()

		if err := f(w, req, ctx, params); err != nil {
			switch {
			case errors.Is(err, core.ErrUnauthorized):
				w.WriteHeader(http.StatusForbidden)
			case errors.Is(err, core.ErrNotFound):
				w.WriteHeader(http.StatusNotFound)
			}
			// probably no template has been executed, so execute error template
			errorTmpl.Execute(w, struct {
				*context
				Err error
			}{
				context: ctx,
				Err:     err,
			})
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>
	<p>
		<a href=".">Back to workspace</a>
	</p>`)

func NewRouter(db *core.CoreDB, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// exempt from the gate
	GETAndPOST("/login", middleware(db, prefix, login))

	// read
	router.GET("/", middleware(db, prefix, home))
	router.GET("/board/:id", middleware(db, prefix, board))
	router.GET("/project/:id", middleware(db, prefix, project))
	router.GET("/logout", middleware(db, prefix, logout))
	router.POST("/upgrade", middleware(db, prefix, upgrade))

	// write, each handler requires the user role
	router.POST("/create-board", middleware(db, prefix, createBoard))
	router.POST("/create-project", middleware(db, prefix, createProject))
	router.POST("/board/:id/delete", middleware(db, prefix, deleteBoard))
	router.POST("/board/:id/move", middleware(db, prefix, moveBoard))
	router.POST("/board/:id/rename", middleware(db, prefix, renameBoard))
	router.POST("/board/:id/save", middleware(db, prefix, saveBoard))
	router.POST("/board/:id/share", middleware(db, prefix, shareBoard))
	router.POST("/project/:id/delete", middleware(db, prefix, deleteProject))
	router.POST("/project/:id/describe", middleware(db, prefix, describeProject))
	router.POST("/project/:id/rename", middleware(db, prefix, renameProject))

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(baseTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var baseTmpl = template.Must(template.New("base").Parse(`
<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<link rel="stylesheet" type="text/css" href="static/bootstrap-4.4.1.min.css">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<title>Boardroom</title>

		<style>

			h1 {
				font-size: 1.5rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 1.5rem 0 0.5rem !important;
			}

			table {
				margin-top: 0.5rem;
				border-bottom: 1px solid #dee2e6;
			}

		</style>
	</head>
	<body>

		{{ if .LoggedIn }}

			<nav class="navbar navbar-expand-md bg-light">
				<a class="navbar-brand" href=".">Boardroom</a>
				<ul class="navbar-nav ml-auto">
					{{ if .IsGuest }}
						<li class="nav-item mr-2">
							<span class="badge badge-warning align-middle">view only</span>
						</li>
						<li class="nav-item mr-2">
							<form class="form-inline" method="post" action="upgrade">
								<input type="password" class="form-control form-control-sm mr-1" name="code" placeholder="User access code" required>
								<button type="submit" class="btn btn-sm btn-outline-secondary">Unlock editing</button>
							</form>
						</li>
					{{ else }}
						<li class="nav-item mr-2">
							<span class="badge badge-success align-middle">full access</span>
						</li>
					{{ end }}
					<li class="nav-item">
						<a class="nav-link" href="logout">Logout</a>
					</li>
				</ul>
			</nav>

		{{ end }}

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>
	</body>
</html>

{{ define "boardTable" }}
	<table class="table table-sm">
		<thead>
			<tr>
				<th>Board</th>
				<th>Changed</th>
				<th>Visibility</th>
				{{ if .IsUser }}
					<th></th>
				{{ end }}
			</tr>
		</thead>
		<tbody>
			{{ $top := . }}
			{{ range .Boards }}
				<tr>
					<td>
						<a href="board/{{ .ID }}">{{ .Name }}</a>
					</td>
					<td>{{ $top.FormatDateTime .TsChanged }}</td>
					<td>
						{{ if .Shared }}
							<span class="badge badge-info">shared</span>
						{{ else }}
							<span class="badge badge-secondary">private</span>
						{{ end }}
					</td>
					{{ if $top.IsUser }}
						<td class="text-right">
							<form class="form-inline float-right ml-2" method="post" action="board/{{ .ID }}/delete" onsubmit="return confirm('Delete this board?');">
								<button type="submit" class="btn btn-sm btn-outline-danger">Delete</button>
							</form>
							<form class="form-inline float-right ml-2" method="post" action="board/{{ .ID }}/share">
								<button type="submit" class="btn btn-sm btn-outline-secondary">
									{{ if .Shared }}Unshare{{ else }}Share{{ end }}
								</button>
							</form>
							<form class="form-inline float-right ml-2" method="post" action="board/{{ .ID }}/move">
								<select class="form-control form-control-sm mr-1" name="project">
									<option value="">No project</option>
									{{ $board := . }}
									{{ range $top.MoveTargets }}
										<option value="{{ .ID }}"{{ if eq .ID $board.ProjectID }} selected{{ end }}>{{ .Name }}</option>
									{{ end }}
								</select>
								<button type="submit" class="btn btn-sm btn-outline-secondary">Move</button>
							</form>
						</td>
					{{ end }}
				</tr>
			{{ else }}
				<tr>
					<td colspan="4" class="text-muted">No boards here yet.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>
{{ end }}`)).Funcs(
	template.FuncMap{
		"Excerpt": func(input string) string {
			return util.Excerpt(input, 160)
		},
		"Markdown": func(input string) template.HTML {
			return template.HTML(util.RenderMarkdown(input))
		},
	},
)

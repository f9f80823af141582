package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/boardroom/core"
)

var boardTmpl = tmpl(`
	<div class="d-flex align-items-center mb-2">
		{{ if .Board.ProjectID }}
			<a class="btn btn-sm btn-outline-secondary mr-2" href="project/{{ .Board.ProjectID }}">Back</a>
		{{ else }}
			<a class="btn btn-sm btn-outline-secondary mr-2" href=".">Back</a>
		{{ end }}
		{{ if .IsUser }}
			<input type="text" class="form-control form-control-sm mr-2" style="max-width: 20rem;" id="board-name" value="{{ .Board.Name }}">
			<button type="button" class="btn btn-sm btn-primary mr-2" onclick="saveBoard()">Save</button>
			<div class="form-check mr-2">
				<input type="checkbox" class="form-check-input" id="board-autosave">
				<label class="form-check-label" for="board-autosave">Autosave</label>
			</div>
			<span class="text-muted mr-auto" id="board-status"></span>
			<form class="form-inline" method="post" action="board/{{ .Board.ID }}/share">
				<button type="submit" class="btn btn-sm btn-outline-secondary">
					{{ if .Board.Shared }}Unshare{{ else }}Share{{ end }}
				</button>
			</form>
		{{ else }}
			<span class="mr-auto">{{ .Board.Name }}</span>
		{{ end }}
	</div>

	<div id="board-app" style="height: 80vh; border: 1px solid #dee2e6;"></div>

	<script src="https://unpkg.com/react@18.2.0/umd/react.production.min.js"></script>
	<script src="https://unpkg.com/react-dom@18.2.0/umd/react-dom.production.min.js"></script>
	<script src="https://unpkg.com/@excalidraw/excalidraw@0.17.6/dist/excalidraw.production.min.js"></script>
	<script>

		var initialData = {{ .BoardData }};
		var viewOnly = {{ .IsGuest }};
		var excalidrawAPI = null;

		ReactDOM.createRoot(document.getElementById("board-app")).render(
			React.createElement(ExcalidrawLib.Excalidraw, {
				initialData: initialData,
				viewModeEnabled: viewOnly,
				excalidrawAPI: function(api) { excalidrawAPI = api; },
			})
		);

		function saveBoard() {
			if (!excalidrawAPI || viewOnly) {
				return;
			}
			var status = document.getElementById("board-status");
			status.textContent = "saving…";
			fetch("board/{{ .Board.ID }}/save", {
				method: "POST",
				headers: { "Content-Type": "application/json" },
				body: JSON.stringify({
					name: document.getElementById("board-name").value,
					data: {
						elements: excalidrawAPI.getSceneElements(),
						appState: { viewBackgroundColor: excalidrawAPI.getAppState().viewBackgroundColor },
						files: excalidrawAPI.getFiles(),
					},
				}),
			}).then(function(resp) {
				if (resp.ok) {
					status.textContent = "saved " + new Date().toLocaleTimeString();
				} else {
					status.textContent = "saving failed: " + resp.status;
				}
			}).catch(function() {
				status.textContent = "saving failed";
			});
		}

		if (!viewOnly) {
			setInterval(function() {
				if (document.getElementById("board-autosave").checked) {
					saveBoard();
				}
			}, 30000);
		}

	</script>`)

type boardData struct {
	*context
	Board     core.DBBoard
	BoardData template.JS
}

func board(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	board, err := ctx.db.OpenBoard(ctx.Role, params.ByName("id"))
	if err != nil {
		return err
	}

	return boardTmpl.Execute(w, &boardData{
		context:   ctx,
		Board:     board,
		BoardData: template.JS(board.Data()),
	})
}

// saveBoard is called by the editor, so it answers with a status code
// instead of the error template.
func saveBoard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		http.Error(w, "unauthorized", http.StatusForbidden)
		return nil
	}

	board, err := ctx.db.OpenBoard(ctx.Role, params.ByName("id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return nil
	}

	var input struct {
		Name string          `json:"name"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	if err := ctx.db.SaveBoard(board, input.Name, string(input.Data)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]int64{"savedAt": board.TsChanged()})
}

func renameBoard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	board, err := ctx.db.OpenBoard(ctx.Role, params.ByName("id"))
	if err != nil {
		return err
	}

	if err := ctx.db.RenameBoard(board, req.PostFormValue("name")); err != nil {
		ctx.Danger(err)
	}

	ctx.SeeOther("/board/%s", board.ID())
	return nil
}

func moveBoard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	board, err := ctx.db.OpenBoard(ctx.Role, params.ByName("id"))
	if err != nil {
		return err
	}

	if err := ctx.db.MoveBoard(board, req.PostFormValue("project")); err != nil {
		ctx.Danger(err)
	} else {
		ctx.Success("Board %s moved", board.Name())
	}

	seeOtherBoardHome(ctx, board)
	return nil
}

func shareBoard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	board, err := ctx.db.OpenBoard(ctx.Role, params.ByName("id"))
	if err != nil {
		return err
	}

	shared, err := ctx.db.ToggleBoardShared(board)
	if err != nil {
		return err
	}

	if shared {
		ctx.Success("Board %s is now visible to guests", board.Name())
	} else {
		ctx.Success("Board %s is now private", board.Name())
	}

	if req.Referer() != "" {
		ctx.SeeOther("%s", req.Referer())
	} else {
		seeOtherBoardHome(ctx, board)
	}
	return nil
}

func deleteBoard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := ctx.RequireUser(); err != nil {
		return err
	}

	board, err := ctx.db.OpenBoard(ctx.Role, params.ByName("id"))
	if err != nil {
		return err
	}

	if err := ctx.db.DeleteBoard(board); err != nil {
		return err
	}

	ctx.Success("Board %s deleted", board.Name())
	seeOtherBoardHome(ctx, board)
	return nil
}

// seeOtherBoardHome redirects to where the board lives.
func seeOtherBoardHome(ctx *context, board core.DBBoard) {
	if pid := board.ProjectID(); pid != "" {
		ctx.SeeOther("/project/%s", pid)
	} else {
		ctx.SeeOther("/")
	}
}

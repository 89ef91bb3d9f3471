package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/russross/blackfriday/v2"
	"github.com/spf13/cobra"

	"reorgboard/internal"
)

func newHttpdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd [addr]",
		Short: "Serve the board over HTTP",
		Long:  `Serve the board as a web page and a small JSON API. The default address comes from [httpd] addr in the config.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			addr := e.cfg.Httpd.Addr
			if len(args) > 0 {
				addr = args[0]
			}
			srv := &boardServer{
				store:   e.store,
				columns: e.cfg.Board.Columns,
				logger:  loggerFromContext(cmd.Context()),
				now:     time.Now,
			}
			return serve(cmd.Context(), addr, srv)
		},
	}
}

func serve(ctx context.Context, addr string, s *boardServer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	httpServer := &http.Server{Handler: s.routes()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("serving board", "url", "http://"+ln.Addr().String(), "file", s.store.Path())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("server stopped")
		return nil
	}
}

// boardServer serves one board file. Moves are read-modify-write under the
// store lock, so the TUI and the server can run side by side.
type boardServer struct {
	store   *internal.Store
	columns int
	logger  *log.Logger
	now     func() time.Time
}

func (s *boardServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.boardHandler)
	r.Get("/api/board", s.apiBoardHandler)
	r.Post("/api/board/move", s.apiMoveHandler)
	r.Get("/static/style.css", styleHandler)
	return r
}

type boardColumn struct {
	Index int
	Cards []*internal.Card
}

func (s *boardServer) load() ([]boardColumn, error) {
	cards, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	a, _ := internal.BuildArrangement(cards, s.columns)
	columns := make([]boardColumn, len(a))
	for i, col := range a {
		columns[i] = boardColumn{Index: i, Cards: []*internal.Card{}}
		for _, e := range col {
			columns[i].Cards = append(columns[i].Cards, e.(*internal.Card))
		}
	}
	return columns, nil
}

func (s *boardServer) boardHandler(w http.ResponseWriter, r *http.Request) {
	columns, err := s.load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := struct {
		Title   string
		Columns []boardColumn
	}{
		Title:   "reorgboard",
		Columns: columns,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := boardTemplate.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type boardResponse struct {
	Columns [][]*internal.Card `json:"columns"`
}

func (s *boardServer) apiBoardHandler(w http.ResponseWriter, r *http.Request) {
	columns, err := s.load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := boardResponse{Columns: make([][]*internal.Card, len(columns))}
	for i, c := range columns {
		resp.Columns[i] = c.Cards
	}
	writeJSON(w, http.StatusOK, resp)
}

type moveRequest struct {
	ID     string `json:"id"`
	Column int    `json:"column"`
}

func (s *boardServer) apiMoveHandler(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	err := s.store.Update(func(cards []internal.StoredCard) ([]internal.StoredCard, error) {
		return internal.MoveCard(cards, s.columns, req.ID, req.Column, s.now())
	})
	switch {
	case errors.Is(err, internal.ErrCardNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, internal.ErrColumnOutOfRange), errors.Is(err, internal.ErrAmbiguousCard):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.logger.Error("move card", "id", req.ID, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("moved card", "id", req.ID, "column", req.Column)
	s.apiBoardHandler(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func styleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	w.Write([]byte(cssStyles))
}

var boardTemplate = template.Must(template.New("board").Funcs(template.FuncMap{
	"markdown": func(text string) template.HTML {
		return template.HTML(renderNote(text))
	},
	"accent": func(c *internal.Card) string {
		return ansi256ToHex(string(c.AccentColor()))
	},
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
}).Parse(boardPage))

// renderNote turns a markdown note into HTML. Raw HTML in the note is dropped
// and only safe link schemes survive.
func renderNote(text string) []byte {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.Safelink,
	})
	return blackfriday.Run([]byte(text), blackfriday.WithRenderer(renderer))
}

const boardPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<h1>{{.Title}}</h1>
<div class="board">
{{- range .Columns}}
<section class="column" data-column="{{.Index}}">
<h2>Column {{.Index}} <span class="count">{{len .Cards}}</span></h2>
{{- range .Cards}}
<article class="card" id="card-{{.ID}}" style="border-color: {{accent .}}">
<h3>{{.Title}}</h3>
{{- with formatDate .Due}}<p class="due">due {{.}}</p>{{end}}
{{- if .Note}}<div class="note">{{markdown .Note}}</div>{{end}}
</article>
{{- end}}
</section>
{{- end}}
</div>
</body>
</html>
`

const cssStyles = `body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; margin: 2rem; background: #1e1e1e; color: #ddd; }
.board { display: flex; gap: 1rem; align-items: flex-start; }
.column { flex: 1; border: 1px solid #444; border-radius: 10px; padding: 0.75rem; min-height: 10rem; }
.column h2 { font-size: 1rem; margin: 0 0 0.75rem; }
.count { color: #888; font-weight: normal; }
.card { border: 1px solid; border-radius: 6px; padding: 0.5rem; margin-bottom: 0.75rem; text-align: center; }
.card h3 { font-size: 0.95rem; margin: 0; }
.due { color: #999; font-size: 0.8rem; margin: 0.25rem 0 0; }
.note { text-align: left; font-size: 0.85rem; }
`

// ansi256ToHex maps the card palette to CSS colors.
func ansi256ToHex(colorNum string) string {
	colorMap := map[string]string{
		"33":  "#0087ff",
		"208": "#ff8700",
		"162": "#d70087",
		"34":  "#00af00",
		"141": "#af87ff",
		"214": "#ffaf00",
		"39":  "#00afff",
		"202": "#ff5f00",
		"165": "#d700ff",
		"46":  "#00ff00",
		"135": "#af5fff",
		"220": "#ffd700",
	}
	if hex, ok := colorMap[colorNum]; ok {
		return hex
	}
	return "#36b3d9"
}

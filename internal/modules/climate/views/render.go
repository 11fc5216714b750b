package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

var indexTmpl *template.Template

// Route is one entry on the index page. Placeholders such as <start> are
// escaped by the template.
type Route struct {
	Path string
	Hint string
}

type IndexData struct {
	Routes []Route
}

// APIRoutes lists the JSON endpoints in the order the index page shows them.
var APIRoutes = []Route{
	{Path: "/api/v1.0/precipitation"},
	{Path: "/api/v1.0/stations"},
	{Path: "/api/v1.0/tobs"},
	{Path: "/api/v1.0/<start>", Hint: "replace <start> with an actual start date in 'YYYY-MM-DD' format"},
	{Path: "/api/v1.0/<start>/<end>", Hint: "replace <start> and <end> with actual start and end dates in 'YYYY-MM-DD' format"},
}

func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	if tmpl.Lookup("index") == nil {
		return errors.New(`views: template "index" not defined`)
	}
	indexTmpl = tmpl
	return nil
}

// LoadTemplates parses the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// RenderIndex writes the route listing served at "/".
func RenderIndex(w io.Writer) error {
	if indexTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return indexTmpl.ExecuteTemplate(w, "index", IndexData{Routes: APIRoutes})
}

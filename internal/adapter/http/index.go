package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/couchcryptid/milan-air-quality/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Years        []int
	Pollutants   []string
	Stations     []string
	TotalRecords int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ds := s.getDataset(w, r)
	if ds == nil {
		return
	}

	data := indexData{
		Years:        domain.Years(),
		Pollutants:   ds.Pollutants(),
		Stations:     ds.StationNames(),
		TotalRecords: ds.Len(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("render index failed", "error", err)
	}
}

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"culinarycompass/models"
)

// HomePage is the data rendered into the landing page template.
type HomePage struct {
	Title            string
	DefaultLatitude  float64
	DefaultLongitude float64
	Cuisines         []string
	SpecialFlags     []string
}

func LoadTemplate(filename string) (*template.Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return template.New("index").Parse(string(data))
}

// HomeHandler renders the search page.
func HomeHandler(tmpl *template.Template, catalog CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants := catalog.Restaurants()
		page := HomePage{
			Title:            "Culinary Compass",
			DefaultLatitude:  DefaultLatitude,
			DefaultLongitude: DefaultLongitude,
			Cuisines:         distinct(restaurants, func(r models.Restaurant) []string { return r.Cuisines }),
			SpecialFlags:     distinct(restaurants, func(r models.Restaurant) []string { return r.SpecialFlags }),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, page); err != nil {
			slog.Error("render home page", slog.Any("error", err))
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}
}

package sheethttp

import (
	"net/http"

	"github.com/bjaus/flatsheet"
	"github.com/bjaus/flatsheet/internal/logger"
)

// Handler serves the records returned by Load as a table in a negotiated
// format.
type Handler struct {
	// Formats lists the offered formats. Default: DefaultFormats.
	Formats []flatsheet.Format
	// Filename overrides the download name. Model and View are used to
	// build one otherwise; see Filename.
	Filename string
	Model    string
	View     string
	// Config controls header and compaction.
	Config flatsheet.Config
	// Options are passed to the encoder.
	Options []flatsheet.Option
	// Load returns the records to render. Spreadsheet responses are not
	// paginated, so Load should return the full result set.
	Load func(r *http.Request) (any, error)
	// Fallback serves requests that do not negotiate one of Formats. When
	// nil such requests get 406 Not Acceptable.
	Fallback http.Handler
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	formats := h.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	f, ok := Negotiate(r, formats)
	if !ok {
		if h.Fallback != nil {
			h.Fallback.ServeHTTP(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
		return
	}

	log := logger.Get("sheethttp")
	data, err := h.Load(r)
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("loading records")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	rows := flatsheet.Render(data, h.Config)
	// Respond logs failures itself; once the body has started there is no
	// status left to change.
	if err := Respond(w, f, Filename(h.Filename, h.Model, h.View), rows, h.Options...); err != nil {
		return
	}
	log.Debug().Str("path", r.URL.Path).Str("format", f.String()).Msg("served table")
}

// Package sheethttp serves flatsheet tables over net/http: it negotiates the
// output format, names the download, and keeps spreadsheet responses whole.
package sheethttp

import (
	"cmp"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/bjaus/flatsheet"
	"github.com/bjaus/flatsheet/internal/logger"
)

// DefaultFormats are offered when a Handler lists none.
var DefaultFormats = []flatsheet.Format{flatsheet.CSV, flatsheet.XLSX}

// legacyTypes are media types clients still send for a format.
var legacyTypes = map[string]flatsheet.Format{
	"application/xlsx":         flatsheet.XLSX,
	"application/vnd.ms-excel": flatsheet.XLSX,
	"application/csv":          flatsheet.CSV,
}

// Negotiate picks one of formats for r. The "format" query parameter wins;
// otherwise Accept entries are tried from the highest quality value down,
// keeping header order among equals. Entries with q=0 and wildcards never
// select a format.
func Negotiate(r *http.Request, formats []flatsheet.Format) (flatsheet.Format, bool) {
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := flatsheet.ParseFormat(q)
		if err == nil && slices.Contains(formats, f) {
			return f, true
		}
		return "", false
	}
	for _, mediaType := range acceptedTypes(r.Header.Get("Accept")) {
		for _, f := range formats {
			if mediaTypeOf(f) == mediaType {
				return f, true
			}
		}
		if f, ok := legacyTypes[mediaType]; ok && slices.Contains(formats, f) {
			return f, true
		}
	}
	return "", false
}

type acceptEntry struct {
	mediaType string
	q         float64
}

// acceptedTypes returns the media types of an Accept header ordered by
// descending quality. Malformed entries and entries with q=0 are dropped.
func acceptedTypes(header string) []string {
	var entries []acceptEntry
	for _, part := range strings.Split(header, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			q, err = strconv.ParseFloat(v, 64)
			if err != nil || q < 0 || q > 1 {
				continue
			}
		}
		if q == 0 {
			continue
		}
		entries = append(entries, acceptEntry{mediaType: mediaType, q: q})
	}
	slices.SortStableFunc(entries, func(a, b acceptEntry) int {
		return cmp.Compare(b.q, a.q)
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.mediaType
	}
	return out
}

// Paginate reports whether the response to r may be paginated. Spreadsheet
// downloads always carry every record.
func Paginate(r *http.Request, formats []flatsheet.Format) bool {
	f, ok := Negotiate(r, formats)
	return !ok || !f.Spreadsheet()
}

// Filename resolves the download name without extension: the override if
// set, else "<model> Report", else "<view> Report".
func Filename(override, model, view string) string {
	switch {
	case override != "":
		return override
	case model != "":
		return model + " Report"
	default:
		return view + " Report"
	}
}

// Respond writes rows to w in format f. Spreadsheet formats are sent as an
// attachment named filename plus the format extension.
func Respond(w http.ResponseWriter, f flatsheet.Format, filename string, rows *flatsheet.Rows, opts ...flatsheet.Option) error {
	log := logger.Get("sheethttp")

	w.Header().Set("Content-Type", f.ContentType())
	if f.Spreadsheet() && filename != "" {
		disposition := mime.FormatMediaType("attachment", map[string]string{
			"filename": filename + f.Extension(),
		})
		w.Header().Set("Content-Disposition", disposition)
	}
	if err := flatsheet.Write(w, f, rows, opts...); err != nil {
		log.Error().Err(err).Str("format", f.String()).Str("filename", filename).Msg("rendering table")
		return err
	}
	log.Debug().Str("format", f.String()).Strs("columns", rows.Header().Labels()).Msg("rendered table")
	return nil
}

func mediaTypeOf(f flatsheet.Format) string {
	mediaType, _, err := mime.ParseMediaType(f.ContentType())
	if err != nil {
		return f.ContentType()
	}
	return mediaType
}

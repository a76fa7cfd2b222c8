package evidence

import "strings"

const separator = " | "

// Evidence is the structured form of borrower-supplied proof of payment:
// a free-text reference, an uploaded file's public URL, or both.
type Evidence struct {
	Note    string `json:"note,omitempty"`
	FileURL string `json:"file_url,omitempty"`
}

func (e Evidence) Empty() bool { return e.Note == "" && e.FileURL == "" }

// String renders the legacy composed form: note alone, url alone, or
// "note | url" when both are present.
func (e Evidence) String() string {
	switch {
	case e.Note != "" && e.FileURL != "":
		return e.Note + separator + e.FileURL
	case e.FileURL != "":
		return e.FileURL
	default:
		return e.Note
	}
}

// Parse reverses String by splitting on the first separator. A bare value is
// treated as a URL when it looks like one, a note otherwise.
func Parse(s string) Evidence {
	if note, url, ok := strings.Cut(s, separator); ok {
		return Evidence{Note: note, FileURL: url}
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Evidence{FileURL: s}
	}
	return Evidence{Note: s}
}

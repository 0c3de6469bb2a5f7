package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/teamtotals/teamtotals/pkg/competition"
)

// EventName returns the human readable event name of a document, or false
// when the format's landmark is missing.
func EventName(doc *goquery.Document, format competition.ScoringFormat) (string, bool) {
	switch format {
	case competition.IJS:
		return ijsEventName(doc)
	case competition.SixO:
		return sixOEventName(doc)
	}
	return "", false
}

// IJS protocol sheets carry the category/segment in a single h2.catseg.
func ijsEventName(doc *goquery.Document) (string, bool) {
	heading := doc.Find("body > h2.catseg").First()
	if heading.Length() == 0 {
		return "", false
	}
	name := strings.TrimSpace(heading.Text())
	return name, name != ""
}

// 6.0 pages put two adjacent headings in the table caption: a section label
// followed by the event name.
func sixOEventName(doc *goquery.Document) (string, bool) {
	var name string
	doc.Find("table > caption > h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		next := h.Next()
		if !next.Is("h2") {
			return true
		}
		name = strings.TrimSpace(next.Text())
		return name == ""
	})
	return name, name != ""
}

// ReadEvent extracts the event described by the file at path. The returned
// event is included by default.
func ReadEvent(path string, format competition.ScoringFormat) (competition.Event, bool, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return competition.Event{}, false, err
	}
	name, ok := EventName(doc, format)
	if !ok {
		return competition.Event{}, false, nil
	}
	return competition.Event{
		Name:       name,
		SourcePath: path,
		Format:     format,
		Included:   true,
	}, true, nil
}

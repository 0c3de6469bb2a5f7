package competition

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// IJSPrefix marks IJS protocol sheets.
	IJSPrefix = "SEGM"
	// SixOSuffix marks 6.0 result pages.
	SixOSuffix = "c1.htm"
)

// ClassifyFile reports the scoring format a result file belongs to, judging by
// its base name only.
func ClassifyFile(name string) (ScoringFormat, bool) {
	name = filepath.Base(name)
	if strings.HasSuffix(name, SixOSuffix) {
		return SixO, true
	}
	if strings.HasPrefix(name, IJSPrefix) {
		return IJS, true
	}
	return 0, false
}

// Classify partitions a directory listing into one sorted path list per
// format. Names matching neither marker are ignored. Segment numbers are
// zero-padded in the source naming convention, so a lexicographic sort gives
// the competition's chronological order.
func Classify(dir string, names []string) map[ScoringFormat][]string {
	files := make(map[ScoringFormat][]string, len(Formats))
	for _, f := range Formats {
		files[f] = []string{}
	}

	for _, name := range names {
		format, ok := ClassifyFile(name)
		if !ok {
			continue
		}
		files[format] = append(files[format], filepath.Join(dir, name))
	}

	for _, list := range files {
		sort.Strings(list)
	}
	return files
}

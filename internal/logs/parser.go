package logs

import (
	"regexp"
	"strconv"
	"strings"
)

// <timestamp> - info: [<tag>] Detected <N> persons, <N> helmets, <N> harnesses in <F>ms
var lineRegex = regexp.MustCompile(`^(.*?) - info: \[(.*?)\] Detected (\d+) persons, (\d+) helmets, (\d+) harnesses in ([\d.]+)ms`)

// ParseLine extracts a DetectionEvent from a single source line.
// The tag is matched but not kept. Lines whose numbers do not convert are rejected.
func ParseLine(line string) (DetectionEvent, bool) {
	m := lineRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return DetectionEvent{}, false
	}

	persons, err := strconv.Atoi(m[3])
	if err != nil {
		return DetectionEvent{}, false
	}
	helmets, err := strconv.Atoi(m[4])
	if err != nil {
		return DetectionEvent{}, false
	}
	harnesses, err := strconv.Atoi(m[5])
	if err != nil {
		return DetectionEvent{}, false
	}
	ms, err := strconv.ParseFloat(m[6], 64)
	if err != nil {
		return DetectionEvent{}, false
	}

	return DetectionEvent{
		Timestamp:     m[1],
		Persons:       persons,
		Helmets:       helmets,
		Harnesses:     harnesses,
		InferenceTime: ms,
	}, true
}

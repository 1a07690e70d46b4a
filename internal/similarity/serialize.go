package similarity

import (
	"strconv"
	"strings"
)

// Serialize encodes a document as one cache-file record:
// <id>$<code><text>|<code><text>|...
// Term text must not contain '$' or '|'; the format defines no escaping.
func Serialize(doc *Document) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(doc.ID, 10))
	sb.WriteByte('$')
	for i, term := range doc.Terms {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteByte(byte(term.Type))
		sb.WriteString(term.Text)
	}
	return sb.String()
}

// Deserialize parses one cache-file record back into a document and relinks
// the RoadNum term to its Road sibling (the link itself is not serialized).
// Malformed records yield nil.
func Deserialize(line string) *Document {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	parts := strings.SplitN(line, "$", 2)
	if len(parts) != 2 {
		return nil
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil
	}
	doc := NewDocument(id)
	if parts[1] == "" {
		return doc
	}
	for _, enc := range strings.Split(parts[1], "|") {
		if enc == "" {
			continue
		}
		t, ok := termTypeFromCode(enc[0])
		if !ok {
			continue
		}
		doc.Terms = append(doc.Terms, NewTerm(t, enc[1:]))
	}
	relinkRoadNum(doc)
	return doc
}

// relinkRoadNum pairs the document's RoadNum term with its Road term.
func relinkRoadNum(doc *Document) {
	road, roadNum := -1, -1
	for i, t := range doc.Terms {
		switch t.Type {
		case TermRoad:
			road = i
		case TermRoadNum:
			roadNum = i
		}
	}
	if roadNum >= 0 {
		doc.Terms[roadNum].Ref = road
	}
}

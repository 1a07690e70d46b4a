package similarity

// TermType is the structural role of a term inside an address vector. The
// byte value doubles as the type code in the durable cache file format.
type TermType byte

const (
	TermProvince TermType = 'P'
	TermCity     TermType = 'C'
	TermCounty   TermType = 'A'
	TermTown     TermType = 'T'
	TermVillage  TermType = 'V'
	TermRoad     TermType = 'R'
	TermRoadNum  TermType = 'N'
	TermStreet   TermType = 'S'
	TermText     TermType = 'X'
)

// termTypeFromCode maps a serialized type code back to its TermType.
func termTypeFromCode(c byte) (TermType, bool) {
	switch t := TermType(c); t {
	case TermProvince, TermCity, TermCounty, TermTown, TermVillage,
		TermRoad, TermRoadNum, TermStreet, TermText:
		return t, true
	}
	return 0, false
}

// Term is one weighted unit of an address vector.
//
// IDF is only meaningful once IDFSet is true: zero is a valid IDF value
// (a term present in more than half the corpus), so the flag distinguishes
// "not yet assigned" from "no discriminating power".
//
// Ref links a RoadNum term to its sibling Road term as an index into the
// owning document's term slice; -1 means no link. Using an index instead of
// a pointer keeps cloned and deserialized documents self-contained.
type Term struct {
	Type   TermType `json:"type"`
	Text   string   `json:"text"`
	IDF    float64  `json:"idf"`
	IDFSet bool     `json:"-"`
	Ref    int      `json:"-"`
}

// NewTerm builds an unlinked term with no IDF assigned.
func NewTerm(t TermType, text string) *Term {
	return &Term{Type: t, Text: text, Ref: -1}
}

// SetIDF assigns the corpus weight.
func (t *Term) SetIDF(v float64) {
	t.IDF = v
	t.IDFSet = true
}

// equal is term identity as used by the deterministic scorer rules:
// same structural type and same text.
func (t *Term) equal(o *Term) bool {
	return t != nil && o != nil && t.Type == o.Type && t.Text == o.Text
}

// Document is the term-vector representation of one address. Terms keep
// insertion order: structural terms first, then free-text tokens. Texts are
// unique within a document; AddTerm enforces first-occurrence-wins.
type Document struct {
	ID    int64   `json:"id"`
	Terms []*Term `json:"terms"`
}

// NewDocument creates an empty document for the given address id.
func NewDocument(id int64) *Document {
	return &Document{ID: id}
}

// AddTerm appends a term unless a term with the same text already exists,
// in which case the existing term is returned. The returned index addresses
// the term inside d.Terms.
func (d *Document) AddTerm(t TermType, text string) (*Term, int) {
	for i, term := range d.Terms {
		if term.Text == text {
			return term, i
		}
	}
	term := NewTerm(t, text)
	d.Terms = append(d.Terms, term)
	return term, len(d.Terms) - 1
}

// FindTerm returns the term with the given text, or nil.
func (d *Document) FindTerm(text string) *Term {
	for _, t := range d.Terms {
		if t.Text == text {
			return t
		}
	}
	return nil
}

// refRoad resolves a RoadNum term's Road link inside this document.
func (d *Document) refRoad(t *Term) *Term {
	if t == nil || t.Ref < 0 || t.Ref >= len(d.Terms) {
		return nil
	}
	return d.Terms[t.Ref]
}

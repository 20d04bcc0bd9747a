package rules

// PieceName identifies a catalog shape.
type PieceName string

// PiecesPerPlayer is the size of each player's starting set.
const PiecesPerPlayer = 21

type catalogEntry struct {
	name  PieceName
	shape Shape
}

// catalog lists the standard set in tray order, smallest pieces first.
var catalog = []catalogEntry{
	{"I1", ParseShape("X")},
	{"I2", ParseShape("XX")},
	{"I3", ParseShape("XXX")},
	{"V3", ParseShape("X.", "XX")},
	{"I4", ParseShape("XXXX")},
	{"O4", ParseShape("XX", "XX")},
	{"T4", ParseShape("XXX", ".X.")},
	{"L4", ParseShape("X..", "XXX")},
	{"Z4", ParseShape("XX.", ".XX")},
	{"F", ParseShape(".XX", "XX.", ".X.")},
	{"I5", ParseShape("XXXXX")},
	{"L5", ParseShape("X...", "XXXX")},
	{"N", ParseShape("XX..", ".XXX")},
	{"P", ParseShape("XX", "XX", "X.")},
	{"T5", ParseShape("XXX", ".X.", ".X.")},
	{"U", ParseShape("X.X", "XXX")},
	{"V5", ParseShape("X..", "X..", "XXX")},
	{"W", ParseShape("X..", "XX.", ".XX")},
	{"X", ParseShape(".X.", "XXX", ".X.")},
	{"Y", ParseShape("XXXX", ".X..")},
	{"Z5", ParseShape("XX.", ".X.", ".XX")},
}

var catalogIndex = func() map[PieceName]int {
	idx := make(map[PieceName]int, len(catalog))
	for i, e := range catalog {
		idx[e.name] = i
	}
	return idx
}()

// PieceNames returns the catalog names in tray order.
func PieceNames() []PieceName {
	names := make([]PieceName, len(catalog))
	for i, e := range catalog {
		names[i] = e.name
	}
	return names
}

// CanonicalShape returns a copy of the catalog shape for name.
func CanonicalShape(name PieceName) (Shape, bool) {
	i, ok := catalogIndex[name]
	if !ok {
		return nil, false
	}
	return catalog[i].shape.Clone(), true
}

// canonical returns the shared catalog matrix without copying. Callers must
// not modify it.
func canonical(name PieceName) Shape {
	return catalog[catalogIndex[name]].shape
}

// Piece is one player's instance of a catalog shape with its live orientation.
type Piece struct {
	Name        PieceName
	Owner       Player
	Orientation Orientation
}

// Shape derives the piece's current appearance from the canonical shape.
func (p Piece) Shape() Shape {
	return p.Orientation.Apply(canonical(p.Name))
}

// Area is the number of cells the piece covers.
func (p Piece) Area() int {
	return canonical(p.Name).Area()
}

// NewPieceSet creates a fresh full set for owner in catalog order.
func NewPieceSet(owner Player) []Piece {
	set := make([]Piece, len(catalog))
	for i, e := range catalog {
		set[i] = Piece{Name: e.name, Owner: owner}
	}
	return set
}

package rules

import "fmt"

// Mode selects who controls Player2.
type Mode int

const (
	ModeHuman Mode = iota
	ModeComputer
)

func (m Mode) String() string {
	if m == ModeComputer {
		return "computer"
	}
	return "human"
}

// ParseMode accepts "human" and "computer".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "human":
		return ModeHuman, true
	case "computer":
		return ModeComputer, true
	}
	return 0, false
}

// Phase is the state machine position.
type Phase int

const (
	AwaitingSelection Phase = iota
	PieceSelected
	// TurnOver means the computer is to move; human input is refused until
	// the host applies the computer's move.
	TurnOver
	GameEnded
)

func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "awaiting selection"
	case PieceSelected:
		return "piece selected"
	case TurnOver:
		return "turn over"
	case GameEnded:
		return "game ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Transform is a change to the selected piece's orientation.
type Transform int

const (
	TransformRotate Transform = iota
	TransformFlip
	TransformReset
)

// PlayerState is one side's remaining pieces and flags.
type PlayerState struct {
	ID                  Player
	Pieces              []Piece
	Passed              bool
	HasPlacedFirstPiece bool
}

// Score is the number of cells in the remaining pieces. Lower is better.
func (ps PlayerState) Score() int {
	total := 0
	for _, p := range ps.Pieces {
		total += p.Area()
	}
	return total
}

// Piece finds a remaining piece by name.
func (ps PlayerState) Piece(name PieceName) (Piece, bool) {
	i := ps.indexOf(name)
	if i < 0 {
		return Piece{}, false
	}
	return ps.Pieces[i], true
}

func (ps PlayerState) indexOf(name PieceName) int {
	for i, p := range ps.Pieces {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// OutcomeStatus tells whether the game is still running.
type OutcomeStatus int

const (
	InProgress OutcomeStatus = iota
	Win
	Draw
)

// Outcome is the result of a game. Winner is set only for Win.
type Outcome struct {
	Status OutcomeStatus
	Winner Player
	Scores [2]int
}

func (o Outcome) String() string {
	switch o.Status {
	case Win:
		return fmt.Sprintf("%s wins %d to %d", o.Winner, o.Scores[o.Winner-1], o.Scores[o.Winner.Opponent()-1])
	case Draw:
		return fmt.Sprintf("draw at %d", o.Scores[0])
	default:
		return "in progress"
	}
}

// State is a complete game. Operations never mutate the receiver; they return
// the next state.
type State struct {
	Board   Board
	Players [2]PlayerState
	Current Player
	Phase   Phase
	Mode    Mode

	// FinalScores is filled when Phase becomes GameEnded.
	FinalScores [2]int

	selected PieceName
}

// NewGame returns the initial state: empty board, full sets, Player1 to move.
func NewGame(mode Mode) State {
	return State{
		Players: [2]PlayerState{
			{ID: Player1, Pieces: NewPieceSet(Player1)},
			{ID: Player2, Pieces: NewPieceSet(Player2)},
		},
		Current: Player1,
		Phase:   AwaitingSelection,
		Mode:    mode,
	}
}

// Clone returns a deep copy. Board is an array and copies by value.
func (s State) Clone() State {
	for i := range s.Players {
		s.Players[i].Pieces = append([]Piece(nil), s.Players[i].Pieces...)
	}
	return s
}

// Player returns the state of p.
func (s State) Player(p Player) PlayerState {
	return s.Players[p-1]
}

func (s *State) player(p Player) *PlayerState {
	return &s.Players[p-1]
}

// IsComputer reports whether p is driven by the computer in this game.
func (s State) IsComputer(p Player) bool {
	return s.Mode == ModeComputer && p == Player2
}

// Selection returns the selected piece with its live orientation.
func (s State) Selection() (Piece, bool) {
	if s.selected == "" {
		return Piece{}, false
	}
	return s.Player(s.Current).Piece(s.selected)
}

// acceptsHumanInput gates selection and placement by phase.
func (s State) acceptsHumanInput() error {
	switch s.Phase {
	case GameEnded:
		return ErrGameOver
	case TurnOver:
		return ErrComputerTurn
	}
	return nil
}

// SelectPiece makes name the piece p intends to place. Selecting for a
// player who is not to move is refused and leaves the state unchanged.
func (s State) SelectPiece(p Player, name PieceName) (State, error) {
	if err := s.acceptsHumanInput(); err != nil {
		return s, err
	}
	if p != s.Current {
		return s, ErrNotYourPiece
	}
	if _, ok := s.Player(p).Piece(name); !ok {
		return s, fmt.Errorf("%w: %s", ErrPieceUnavailable, name)
	}
	next := s.Clone()
	next.selected = name
	next.Phase = PieceSelected
	return next, nil
}

// SetOrientation turns the selected piece. The catalog shape is untouched;
// only the piece's orientation descriptor changes.
func (s State) SetOrientation(t Transform) (State, error) {
	if err := s.acceptsHumanInput(); err != nil {
		return s, err
	}
	if _, ok := s.Selection(); !ok {
		return s, ErrNoSelection
	}
	next := s.Clone()
	ps := next.player(next.Current)
	piece := &ps.Pieces[ps.indexOf(next.selected)]
	switch t {
	case TransformRotate:
		piece.Orientation = piece.Orientation.Rotate()
	case TransformFlip:
		piece.Orientation = piece.Orientation.Flip()
	case TransformReset:
		piece.Orientation = Orientation{}
	default:
		return s, fmt.Errorf("unknown transform %d", int(t))
	}
	return next, nil
}

// PreviewPlacement returns the on-board cells the selection would cover with
// its origin at (row, col), and the legality verdict for that anchor.
func (s State) PreviewPlacement(row, col int) ([]Pos, error) {
	piece, ok := s.Selection()
	if !ok {
		return nil, ErrNoSelection
	}
	shape := piece.Shape()
	var cells []Pos
	for _, c := range shape.Cells() {
		if InBounds(row+c.Row, col+c.Col) {
			cells = append(cells, Pos{Row: row + c.Row, Col: col + c.Col})
		}
	}
	ps := s.Player(s.Current)
	return cells, CheckPlacement(&s.Board, s.Current, shape, row, col, !ps.HasPlacedFirstPiece)
}

// AttemptPlacement places the selected piece with its origin at (row, col).
// On failure the returned state equals the receiver.
func (s State) AttemptPlacement(row, col int) (State, error) {
	if err := s.acceptsHumanInput(); err != nil {
		return s, err
	}
	piece, ok := s.Selection()
	if !ok {
		return s, ErrNoSelection
	}
	return s.place(piece, row, col)
}

// Play applies a complete move for the current player in one step. It is how
// the computer's move is applied, so it is accepted in TurnOver.
func (s State) Play(m Move) (State, error) {
	if s.Phase == GameEnded {
		return s, ErrGameOver
	}
	piece, ok := s.Player(s.Current).Piece(m.Piece)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrPieceUnavailable, m.Piece)
	}
	piece.Orientation = m.Orientation
	return s.place(piece, m.Row, m.Col)
}

func (s State) place(piece Piece, row, col int) (State, error) {
	shape := piece.Shape()
	ps := s.Player(s.Current)
	if err := CheckPlacement(&s.Board, s.Current, shape, row, col, !ps.HasPlacedFirstPiece); err != nil {
		return s, err
	}

	next := s.Clone()
	next.Board.commit(shape, row, col, next.Current)
	mover := next.player(next.Current)
	i := mover.indexOf(piece.Name)
	mover.Pieces = append(mover.Pieces[:i], mover.Pieces[i+1:]...)
	mover.HasPlacedFirstPiece = true
	next.selected = ""
	next.advanceTurn()
	return next, nil
}

// Pass gives up the current player's turn for good. The host calls it when
// the computer was scheduled but finds no move. A player who still has a
// legal placement cannot pass; the state is returned unchanged.
func (s State) Pass() (State, error) {
	if s.Phase == GameEnded {
		return s, ErrGameOver
	}
	if HasAnyLegalMove(&s.Board, s.Player(s.Current)) {
		return s, fmt.Errorf("%w: %s", ErrCanStillMove, s.Current)
	}
	next := s.Clone()
	next.player(next.Current).Passed = true
	next.selected = ""
	if next.Players[0].Passed && next.Players[1].Passed {
		next.end()
		return next, nil
	}
	next.advanceTurn()
	return next, nil
}

// advanceTurn hands the turn to the opponent, skipping any player who has no
// legal move. A pass flag is never cleared: the board only grows, so a player
// who cannot move now can never move again.
func (s *State) advanceTurn() {
	for {
		s.Current = s.Current.Opponent()
		ps := s.player(s.Current)
		if !ps.Passed && HasAnyLegalMove(&s.Board, *ps) {
			break
		}
		ps.Passed = true
		if s.Players[0].Passed && s.Players[1].Passed {
			s.end()
			return
		}
	}
	if s.IsComputer(s.Current) {
		s.Phase = TurnOver
	} else {
		s.Phase = AwaitingSelection
	}
}

func (s *State) end() {
	s.Phase = GameEnded
	s.FinalScores = [2]int{s.Players[0].Score(), s.Players[1].Score()}
}

// LegalMoves lists every legal move for p on the current board.
func (s State) LegalMoves(p Player) []Move {
	return LegalMoves(&s.Board, s.Player(p))
}

// HasAnyLegalMove reports whether p can place any piece.
func (s State) HasAnyLegalMove(p Player) bool {
	return HasAnyLegalMove(&s.Board, s.Player(p))
}

// Scores returns both players' remaining-cell totals.
func (s State) Scores() (int, int) {
	return s.Players[0].Score(), s.Players[1].Score()
}

// Outcome reports the result. Lower score wins; equal scores draw.
func (s State) Outcome() Outcome {
	if s.Phase != GameEnded {
		p1, p2 := s.Scores()
		return Outcome{Status: InProgress, Scores: [2]int{p1, p2}}
	}
	o := Outcome{Scores: s.FinalScores}
	switch {
	case s.FinalScores[0] < s.FinalScores[1]:
		o.Status, o.Winner = Win, Player1
	case s.FinalScores[1] < s.FinalScores[0]:
		o.Status, o.Winner = Win, Player2
	default:
		o.Status = Draw
	}
	return o
}

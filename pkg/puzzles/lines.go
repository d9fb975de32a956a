package puzzles

// Win marks the terminal move of a line.
const Win = "win"

// Lines maps a solver move (UCI) either to the continuation Lines or to Win.
// A puzzle loaded from PGN has exactly one key at every depth.
type Lines map[string]interface{}

// BuildLines converts a puzzle move sequence into its lines tree.
// The first move is the opponent's setup move and never becomes a key,
// except for single-move puzzles where it is also the terminal move.
func BuildLines(moves []string) (Lines, error) {
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	root := Lines{}
	cur := root
	// moves[1:len-1] is empty for one- and two-move puzzles
	if len(moves) > 2 {
		for _, move := range moves[1 : len(moves)-1] {
			next := Lines{}
			cur[move] = next
			cur = next
		}
	}
	cur[moves[len(moves)-1]] = Win
	return root, nil
}

// Clone returns a deep copy of l.
func (l Lines) Clone() Lines {
	if l == nil {
		return nil
	}
	res := make(Lines, len(l))
	for move, next := range l {
		if sub, ok := next.(Lines); ok {
			res[move] = sub.Clone()
		} else {
			res[move] = next
		}
	}
	return res
}

// Path follows the single line from the root and returns the moves in order,
// the last one being the winning move.
func (l Lines) Path() []string {
	path := make([]string, 0)
	cur := l
	for len(cur) > 0 {
		var move string
		for move = range cur {
			break
		}
		path = append(path, move)
		sub, ok := cur[move].(Lines)
		if !ok {
			break
		}
		cur = sub
	}
	return path
}

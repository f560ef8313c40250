package board

import "fmt"

type Outcome uint8

const (
	None Outcome = iota
	Revealed
	BombHit
	Win
	Flagged
	Unflagged
)

var outcomeNames = [...]string{
	None:      "none",
	Revealed:  "revealed",
	BombHit:   "bomb_hit",
	Win:       "win",
	Flagged:   "flagged",
	Unflagged: "unflagged",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// [Outcome] implements [encoding.TextMarshaler]
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Changed reports whether the command that produced o was accepted.
func (o Outcome) Changed() bool {
	return o != None
}

// Terminal reports whether o ended the game.
func (o Outcome) Terminal() bool {
	return o == BombHit || o == Win
}

package entity

// Outcome classifies a position.
type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Tie
)

// Verdict is the terminal-state classification of a board. Winner is set only when Outcome is Won.
type Verdict struct {
	Outcome Outcome `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
}

func (that Verdict) IsTerminal() bool {
	return that.Outcome != InProgress
}

func (that Verdict) String() string {
	switch that.Outcome {
	case Won:
		return that.Winner.String() + " wins"
	case Tie:
		return "tie"
	default:
		return "in progress"
	}
}

package entity

// Decision is the result of an optimal-move search: the chosen move and its minimax score
// from the searching side's point of view.
type Decision struct {
	Move  Move `json:"move"`
	Score int  `json:"score"`
}

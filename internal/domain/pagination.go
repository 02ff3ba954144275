package domain

// PaginationParams holds skip/take pagination parameters for list queries.
type PaginationParams struct {
	Skip int
	Take int
}

// Normalized clamps negative values to zero and caps Take at maxTake.
// A zero Take falls back to maxTake.
func (p PaginationParams) Normalized(maxTake int) PaginationParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Take <= 0 || p.Take > maxTake {
		p.Take = maxTake
	}
	return p
}

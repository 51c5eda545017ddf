package deck

const (
	ErrContextShuffle = "failed to shuffle units"
)

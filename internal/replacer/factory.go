package replacer

// New constructs a Replacer for the given policy and fixed capacity.
func New(policy Policy, capacity int) Replacer {
	if policy == PolicyARC {
		return newARCAdapter(capacity)
	}
	return newClockAdapter(capacity)
}

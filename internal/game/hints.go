package game

// Milestone hints, keyed by the 1-indexed attempt count that unlocks them.
// An explicit map keeps the milestone set extensible without allocating a
// slot per attempt count.
var hintMilestones = map[int64]string{
	10: "🤔 Hint 1: Maybe try asking REALLY nicely...",
	20: "🍒 Hint 2: Something sweet might help...",
	30: "🙏 Hint 3: How would you ask your mom for dessert?",
}

// HintFor returns the hint unlocked at exactly this attempt count, if any.
// Counts between or beyond milestones, zero and negative counts all return
// false.
func HintFor(attemptCount int64) (string, bool) {
	hint, ok := hintMilestones[attemptCount]
	return hint, ok
}

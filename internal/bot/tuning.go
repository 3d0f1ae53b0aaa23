package bot

// Tuning holds the knobs of the standard strategy's bidding scorer.
type Tuning struct {
	// TrumpCardBase is awarded per bower-aware trump card; each trump card
	// additionally earns RankValue/StrengthDivisor.
	TrumpCardBase   int
	StrengthDivisor int
	RightBowerBonus int
	LeftBowerBonus  int
	OffSuitAceBonus int
	CallThreshold   int
	AloneThreshold  int
}

// DefaultTuning calls on roughly three trump or two strong trump with side
// help, and goes alone only on near-lock hands.
var DefaultTuning = Tuning{
	TrumpCardBase:   2,
	StrengthDivisor: 8,
	RightBowerBonus: 4,
	LeftBowerBonus:  3,
	OffSuitAceBonus: 1,
	CallThreshold:   14,
	AloneThreshold:  19,
}

package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call to obtain a table voice token.
	RpcVoiceToken = "voice_token"

	// MatchNameEuchre is the authoritative match handler name registered with Nakama.
	MatchNameEuchre = "euchre_match"

	// MatchLabelKey_OpenSeats is the label key quick match filters on.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame          int64 = 1
	OpPass               int64 = 2
	OpCallTrump          int64 = 3
	OpPlayCard           int64 = 4
	OpToggleLearningMode int64 = 5

	// Server -> Client events
	OpLobbyState      int64 = 101
	OpGameStarted     int64 = 102
	OpHandDealt       int64 = 103 // send privately
	OpBiddingStarted  int64 = 104
	OpBidPassed       int64 = 105
	OpDealerMustCall  int64 = 106
	OpTrumpSet        int64 = 107
	OpCardPlayed      int64 = 108
	OpTrickWon        int64 = 109
	OpTrickCleared    int64 = 110
	OpHandCompleted   int64 = 111
	OpGameEnded       int64 = 112
	OpLearningToggled int64 = 113
	OpStateReset      int64 = 114
	OpGameError       int64 = 115
)

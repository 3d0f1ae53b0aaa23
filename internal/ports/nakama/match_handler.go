package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"euchre/internal/app"
	"euchre/internal/bot"
	"euchre/internal/config"
	"euchre/internal/domain"
	"euchre/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// matchLabel is the queryable match label; quick match filters on it.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string `json:"seats"`      // Array of user IDs, empty string means seat is empty
	OwnerSeat int       `json:"owner_seat"` // Seat index of the match owner
	Tick      int64     `json:"tick"`       // Current tick of the match for timed logic

	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"` // Euchre state machine
	Game      *domain.Game                `json:"-"` // Authoritative game aggregate
	Store     ports.SnapshotStore         `json:"-"` // Snapshot persistence
	Bank      ports.Bank                  `json:"-"` // Interface to Nakama wallet

	BotsEnabled          bool  `json:"bots_enabled"`            // Whether CPU players are allowed
	BotMinDelay          int   `json:"bot_min_delay"`           // Min seconds a CPU seat waits
	BotMaxDelay          int   `json:"bot_max_delay"`           // Max seconds a CPU seat waits
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotWaitUntil         int64 `json:"bot_wait_until"`          // Tick when the CPU seat should act
	ClearWaitUntil       int64 `json:"clear_wait_until"`        // Tick when a resolved trick is cleared
	LastSinglePlayerTick int64 `json:"last_single_player_tick"` // Tick when a single player started waiting

	Bots map[string]*bot.Agent `json:"-"` // Active CPU agents
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// normalizeBotDelays fills in default CPU pacing delays and keeps the window
// well formed. A min above max would make the per-turn delay draw panic.
func (ms *MatchState) normalizeBotDelays() {
	if ms.BotMinDelay == 0 {
		ms.BotMinDelay = 1
	}
	if ms.BotMaxDelay == 0 {
		ms.BotMaxDelay = 3
	}
	if ms.BotMaxDelay < ms.BotMinDelay {
		ms.BotMaxDelay = ms.BotMinDelay
	}
}

// InLobby reports whether the table is between games.
func (ms *MatchState) InLobby() bool {
	return ms.Game == nil || ms.Game.Phase == domain.PhaseLobby || ms.Game.Phase == domain.PhaseGameOver
}

// isBotUserId reports whether the given user id represents a CPU seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load CPU identities from data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	// Load game configuration
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	game := domain.NewGame()
	game.TargetScore = config.GetTargetScore()

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil, nil),
		Game:      game,
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Agent),
		Bank:      NewNakamaBankAdapter(nk),
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	state.Store = NewNakamaSnapshotStore(nk, config.GetSnapshotCollection(), matchID)

	// Resume a previous snapshot when one survives; otherwise start clean.
	if snapshot, found, err := state.Store.Load(ctx); err != nil {
		logger.Warn("MatchInit: Snapshot unusable, starting fresh: %v", err)
	} else if found {
		logger.Info("MatchInit: Resumed game snapshot for match %s", matchID)
		state.Game = snapshot
	}

	// Read environment variables for bot configuration
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["euchre_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["euchre_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["euchre_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["euchre_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	state.normalizeBotDelays()
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = config.GetBotAutoFillDelaySeconds()
	}

	labelBytes, err := json.Marshal(mh.currentLabel(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A returning player always gets their seat back.
	for _, seatUserId := range matchState.Seats {
		if seatUserId == presence.GetUserId() {
			return state, true, ""
		}
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.InLobby() {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		// Store presence
		matchState.Presences[p.GetUserId()] = p

		// Rejoining player keeps their seat; resend their hand privately.
		rejoined := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				rejoined = true
				if !matchState.InLobby() {
					mh.sendHand(matchState, dispatcher, logger, i)
				}
				break
			}
		}
		if rejoined {
			continue
		}

		// Assign seat: Try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.InLobby() {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(ctx, matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Mid-game leavers keep their seat so they can rejoin; lobby leavers
		// free it.
		if !matchState.InLobby() {
			continue
		}

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if matchState.InLobby() && shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Handle incoming messages
	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPass:
			mh.handlePass(ctx, matchState, dispatcher, logger, msg)
		case OpCallTrump:
			mh.handleCallTrump(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpToggleLearningMode:
			mh.handleToggleLearningMode(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// Timed work: trick reveal pause, then CPU turns.
	mh.processTrickClear(ctx, matchState, dispatcher, logger)
	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// processTrickClear fires the pending trick clear after the reveal pause. The
// condition is recomputed from the aggregate each tick, so a superseded pause
// simply never fires.
func (mh *matchHandler) processTrickClear(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || !state.Game.AwaitingClear {
		state.ClearWaitUntil = 0
		return
	}

	if state.ClearWaitUntil == 0 {
		state.ClearWaitUntil = state.Tick + int64(config.GetTrickRevealDelaySeconds())
		return
	}
	if state.Tick < state.ClearWaitUntil {
		return
	}

	state.ClearWaitUntil = 0
	mh.applyAction(ctx, state, dispatcher, logger, app.ClearTrick(), "")
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.InLobby() {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				if mh.fillEmptySeatsWithBots(state, logger) {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastLobbyState(ctx, state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			// Reset timer if 0 or >1 humans
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle CPU turns in-game
	game := state.Game
	if game.Phase != domain.PhaseBidding && game.Phase != domain.PhasePlaying {
		state.BotWaitUntil = 0
		return
	}
	if game.AwaitingClear {
		state.BotWaitUntil = 0
		return
	}

	currentUserID := state.Seats[game.Current]
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: CPU %s (seat %d) will act at tick %d (current %d)", currentUserID, game.Current, state.BotWaitUntil, state.Tick)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}

	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		// Fallback if agent missing (shouldn't happen for new bots)
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	switch game.Phase {
	case domain.PhaseBidding:
		decision := agent.Bid(game, game.Current)
		if decision.Call {
			mh.applyAction(ctx, state, dispatcher, logger, app.SetTrump(game.Current, decision.Suit, decision.Alone), "")
		} else {
			mh.applyAction(ctx, state, dispatcher, logger, app.Pass(game.Current), "")
		}
	case domain.PhasePlaying:
		card, err := agent.Play(game, game.Current)
		if err != nil {
			logger.Error("processBots: CPU %s failed to pick a card: %v", currentUserID, err)
			return
		}
		mh.applyAction(ctx, state, dispatcher, logger, app.PlayCard(game.Current, card), "")
	}
}

// fillEmptySeatsWithBots seats a CPU agent in every empty seat, reporting
// whether any seat changed.
func (mh *matchHandler) fillEmptySeatsWithBots(state *MatchState, logger runtime.Logger) bool {
	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetIdentity(i)
		botID := identity.UserID
		state.Seats[i] = botID

		agent, err := bot.NewAgent(botID)
		if err != nil {
			logger.Error("fillEmptySeatsWithBots: Failed to create agent for %s: %v", botID, err)
		} else {
			state.Bots[botID] = agent
		}

		logger.Info("fillEmptySeatsWithBots: Added CPU %s (%s) to seat %d", identity.DisplayName, botID, i)
		added = true
	}
	return added
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if !state.InLobby() {
		logger.Warn("StartGame: Game already in progress.")
		return
	}

	// Euchre always plays four-handed; fill the short seats with CPUs.
	if state.GetOpenSeatsCount() > 0 {
		if !state.BotsEnabled {
			logger.Warn("StartGame: Cannot start with %d open seats and bots disabled.", state.GetOpenSeatsCount())
			mh.sendError(state, dispatcher, logger, senderID, 400, "table is not full")
			return
		}
		if mh.fillEmptySeatsWithBots(state, logger) {
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastLobbyState(ctx, state, dispatcher, logger)
		}
	}

	mh.syncSeatsToGame(state)
	state.Game.TargetScore = config.GetTargetScore()

	mh.applyAction(ctx, state, dispatcher, logger, app.StartGame(), senderID)
}

func (mh *matchHandler) handlePass(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := mh.seatOf(state, msg.GetUserId())
	if senderSeat < 0 {
		logger.Warn("handlePass: User %s has no seat.", msg.GetUserId())
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, app.Pass(senderSeat), msg.GetUserId())
}

func (mh *matchHandler) handleCallTrump(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)
	if senderSeat < 0 {
		logger.Warn("handleCallTrump: User %s has no seat.", senderID)
		return
	}

	var req struct {
		Suit  domain.Suit `json:"suit"`
		Alone bool        `json:"alone"`
	}
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleCallTrump: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	mh.applyAction(ctx, state, dispatcher, logger, app.SetTrump(senderSeat, req.Suit, req.Alone), senderID)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)
	if senderSeat < 0 {
		logger.Warn("handlePlayCard: User %s has no seat.", senderID)
		return
	}

	var req struct {
		Card domain.Card `json:"card"`
	}
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handlePlayCard: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	mh.applyAction(ctx, state, dispatcher, logger, app.PlayCard(senderSeat, req.Card), senderID)
}

func (mh *matchHandler) handleToggleLearningMode(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := mh.seatOf(state, msg.GetUserId())
	if senderSeat < 0 {
		logger.Warn("handleToggleLearningMode: User %s has no seat.", msg.GetUserId())
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, app.ToggleLearningMode(), msg.GetUserId())
}

// applyAction runs one state machine transition and dispatches the results.
// Deal follow-ups run immediately; CPU turns and trick clears are paced by the
// tick loop instead.
func (mh *matchHandler) applyAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, action app.Action, senderID string) {
	events, followUps, err := state.App.Apply(state.Game, action)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	if err != nil {
		if errors.Is(err, app.ErrStateReset) {
			logger.Error("applyAction: Game state was corrupt and has been reset: %v", err)
			mh.updateLabel(state, dispatcher, logger)
			mh.saveSnapshot(ctx, state, logger)
			return
		}
		logger.Warn("applyAction: %s rejected for %s: %v", action.Type, senderID, err)
		if senderID != "" {
			mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		}
		return
	}

	for _, ev := range events {
		switch ev.Kind {
		case app.EventGameStarted, app.EventGameEnded:
			mh.updateLabel(state, dispatcher, logger)
		}
		if ev.Kind == app.EventGameEnded {
			mh.settleStakes(ctx, state, logger, ev.Payload.(app.GameEndedPayload))
		}
	}

	for _, followUp := range followUps {
		if followUp.Type == app.ActionDeal {
			mh.applyAction(ctx, state, dispatcher, logger, followUp, "")
			return
		}
	}

	mh.saveSnapshot(ctx, state, logger)
}

func (mh *matchHandler) saveSnapshot(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil {
		return
	}
	if err := state.Store.Save(ctx, state.Game); err != nil {
		logger.Warn("saveSnapshot: %v", err)
	}
}

// settleStakes pays the winning team's humans out of the losing team's humans.
func (mh *matchHandler) settleStakes(ctx context.Context, state *MatchState, logger runtime.Logger, payload app.GameEndedPayload) {
	if state.Bank == nil {
		return
	}

	stake := config.GetBaseStake("")
	matchID := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID)

	updates := make([]ports.WalletUpdate, 0, len(state.Seats))
	for seat, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		amount := -stake
		if domain.TeamForSeat(seat) == payload.WinningTeam {
			amount = stake
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": matchID,
				"reason":   "game_settlement",
			},
		})
	}

	if err := state.Bank.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settleStakes: Failed to update balances: %v", err)
	}
}

// syncSeatsToGame writes the seat assignments into the game aggregate.
func (mh *matchHandler) syncSeatsToGame(state *MatchState) {
	for i, userID := range state.Seats {
		player := state.Game.Players[i]
		player.UserID = userID
		player.IsCPU = isBotUserId(userID)
		player.DisplayName = mh.displayName(state, userID)
	}
}

func (mh *matchHandler) displayName(state *MatchState, userID string) string {
	if p, exists := state.Presences[userID]; exists {
		return p.GetUsername()
	}
	if name := bot.DisplayName(userID); name != "" {
		return name
	}
	return userID
}

func (mh *matchHandler) seatOf(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// sendHand privately resends a seat's current hand, used on rejoin.
func (mh *matchHandler) sendHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	player := state.Game.Players[seat]
	if player == nil {
		return
	}
	presence, ok := state.Presences[player.UserID]
	if !ok {
		return
	}

	payload := app.HandDealtPayload{Seat: seat, Hand: player.Hand}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendHand: Failed to marshal hand: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpHandDealt, data, []runtime.Presence{presence}, nil, true)
}

// lobbyPlayer is one seat entry of the lobby snapshot.
type lobbyPlayer struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsCPU       bool   `json:"is_cpu"`
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
	Cards       int    `json:"cards"`
}

// lobbySnapshot is broadcast whenever seating changes.
type lobbySnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []lobbyPlayer `json:"players"`
}

func (mh *matchHandler) broadcastLobbyState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var players []lobbyPlayer
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		balance := int64(0)
		if state.Bank != nil {
			if b, err := state.Bank.GetBalance(ctx, userID); err == nil {
				balance = b
			} else {
				logger.Debug("broadcastLobbyState: No balance for %s: %v", userID, err)
			}
		}

		cards := 0
		if p := state.Game.Players[i]; p != nil {
			cards = len(p.Hand)
		}

		players = append(players, lobbyPlayer{
			UserID:      userID,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsCPU:       isBotUserId(userID),
			DisplayName: mh.displayName(state, userID),
			Balance:     balance,
			Cards:       cards,
		})
	}

	snapshot := lobbySnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   players,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastLobbyState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, data, nil, nil, true)
}

// opCodeForEvent maps a state machine event onto its wire opcode.
func opCodeForEvent(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventBiddingStarted:
		return OpBiddingStarted, true
	case app.EventBidPassed:
		return OpBidPassed, true
	case app.EventDealerMustCall:
		return OpDealerMustCall, true
	case app.EventTrumpSet:
		return OpTrumpSet, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventTrickWon:
		return OpTrickWon, true
	case app.EventTrickCleared:
		return OpTrickCleared, true
	case app.EventHandCompleted:
		return OpHandCompleted, true
	case app.EventGameEnded:
		return OpGameEnded, true
	case app.EventLearningToggled:
		return OpLearningToggled, true
	case app.EventStateReset:
		return OpStateReset, true
	default:
		return 0, false
	}
}

// broadcastEvent serializes an app event and dispatches it to its recipients.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := opCodeForEvent(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// CPU seats), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
}

// gameError is the payload behind OpGameError.
type gameError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// sendError sends a gameError to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	data, err := json.Marshal(gameError{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal gameError: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) currentLabel(state *MatchState) matchLabel {
	phase := "lobby"
	if !state.InLobby() {
		phase = "playing"
	}
	return matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "euchre",
		Phase: phase,
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(mh.currentLabel(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

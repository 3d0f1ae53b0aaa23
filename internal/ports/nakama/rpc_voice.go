package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"euchre/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcVoiceToken signs a voice token for the calling user.
// Payload: {"action": "login" | "join", "channel": "<match id>"}
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		Action  string `json:"action"`
		Channel string `json:"channel"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["voice_secret"]
	issuer := env["voice_issuer"]
	domain := env["voice_domain"]
	if secret == "" || issuer == "" || domain == "" {
		logger.Warn("rpcVoiceToken: voice credentials missing from env")
		return "", runtime.NewError("Voice not configured", 9) // FAILED_PRECONDITION
	}

	if req.Action == app.VoiceTokenActionJoin && req.Channel == "" {
		return "", runtime.NewError("Channel required for join", 3)
	}

	svc := app.NewVoiceService(secret, issuer, domain)
	token, err := svc.GenerateToken(userID, req.Action, req.Channel)
	if err != nil {
		logger.Error("rpcVoiceToken: Failed to generate token: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	res := map[string]string{
		"token": token,
	}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}

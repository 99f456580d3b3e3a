package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("rejoin token not found")

const rejoinTokenPrefix = "rejoin-token"

// RejoinState is what a disconnected participant needs to re-attach to its
// room without re-running full join validation.
type RejoinState struct {
	RoomId   string `json:"room_id"`
	Username string `json:"username"`
	WasHost  bool   `json:"was_host"`
}

type Repo struct {
	rc  *redis.Client
	exp time.Duration
}

func NewRepo(rc *redis.Client, exp time.Duration) *Repo {
	return &Repo{rc: rc, exp: exp}
}

func (r *Repo) SetRejoinToken(ctx context.Context, token string, state *RejoinState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal rejoin state: %w", err)
	}

	return r.rc.Set(ctx, rejoinTokenPrefix+":"+token, payload, r.exp).Err()
}

// PopRejoinToken consumes the token: a rejoin token is single-use.
func (r *Repo) PopRejoinToken(ctx context.Context, token string) (RejoinState, error) {
	payload, err := r.rc.GetDel(ctx, rejoinTokenPrefix+":"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return RejoinState{}, ErrTokenNotFound
		}
		return RejoinState{}, err
	}

	var state RejoinState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return RejoinState{}, fmt.Errorf("failed to unmarshal rejoin state: %w", err)
	}

	return state, nil
}

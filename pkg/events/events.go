// Package events carries the structured notification events the engine emits.
// The engine never formats or sends messages itself; an external dispatcher
// (email/push worker) consumes these.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Event types emitted by the engine.
const (
	TypeDraftPickSaved        = "draft_pick_saved"
	TypeDraftStarted          = "draft_started"
	TypeDraftClosed           = "draft_closed"
	TypeSeasonPlanSaved       = "season_plan_saved"
	TypeCaptainChanged        = "captain_changed"
	TypeJerseyNumberAssigned  = "jersey_number_assigned"
	TypeJerseyRequestReviewed = "jersey_request_reviewed"
)

// Event is the payload handed to the notification dispatcher.
type Event struct {
	Type          string    `json:"type"`
	CompetitionID uint      `json:"competition_id,omitempty"`
	TeamID        uint      `json:"team_id,omitempty"`
	UserID        uint      `json:"user_id,omitempty"`
	ActorUserID   uint      `json:"actor_user_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Dispatcher receives engine events. Implementations must not block the
// request for long; delivery is best-effort.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// LogDispatcher writes every event as a structured log line. Always installed;
// it doubles as the audit trail when no queue is configured.
type LogDispatcher struct {
	Log *logrus.Logger
}

func (d *LogDispatcher) Dispatch(_ context.Context, ev Event) {
	d.Log.WithFields(logrus.Fields{
		"type":           ev.Type,
		"competition_id": ev.CompetitionID,
		"team_id":        ev.TeamID,
		"user_id":        ev.UserID,
		"actor_user_id":  ev.ActorUserID,
	}).Info("engine event")
}

// RedisDispatcher publishes events as JSON to a Redis channel for the
// notification worker, and falls back to logging on publish failure.
type RedisDispatcher struct {
	Client  *redis.Client
	Channel string
	Log     *logrus.Logger
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		d.Log.WithError(err).Warn("event marshal failed")
		return
	}
	if err := d.Client.Publish(ctx, d.Channel, payload).Err(); err != nil {
		d.Log.WithError(err).WithField("type", ev.Type).Warn("event publish failed")
	}
}

// Multi fans an event out to several dispatchers.
type Multi []Dispatcher

func (m Multi) Dispatch(ctx context.Context, ev Event) {
	for _, d := range m {
		d.Dispatch(ctx, ev)
	}
}

// New builds the event payload with the timestamp filled in.
func New(evType string, competitionID, teamID, userID, actorUserID uint) Event {
	return Event{
		Type:          evType,
		CompetitionID: competitionID,
		TeamID:        teamID,
		UserID:        userID,
		ActorUserID:   actorUserID,
		OccurredAt:    time.Now(),
	}
}

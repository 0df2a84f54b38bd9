package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// One row per create/update/delete against an entity; the analytics
// endpoints aggregate over this table.
type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_log"`

	ID         string `bun:"id,pk" json:"id"`
	AppID      string `bun:"app_id,notnull" json:"appId"`
	EntityType string `bun:"entity_type,notnull" json:"entityType"` // event, venue, organizer, category
	EntityID   string `bun:"entity_id,notnull" json:"entityID"`
	Action     string `bun:"action,notnull" json:"action"` // created, updated, deleted
	AtUnixUTC  int64  `bun:"at,notnull" json:"at"`
}

// LogActivity records an action against an entity. Failures here must not
// fail the request that triggered them; callers log and move on.
func LogActivity(ctx context.Context, db bun.IDB, appID, entityType, entityID, action string) error {
	switch {
	case entityType == "":
		return fmt.Errorf("LogActivity: entity type is blank")
	case entityID == "":
		return fmt.Errorf("LogActivity: entity id is blank")
	case action == "":
		return fmt.Errorf("LogActivity: action is blank")
	}
	if appID == "" {
		appID = "1"
	}

	entry := ActivityLog{
		ID:         uuid.NewString(),
		AppID:      appID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		AtUnixUTC:  time.Now().UTC().Unix(),
	}
	if _, err := db.NewInsert().
		Model(&entry).
		Exec(ctx); err != nil {
		return fmt.Errorf("LogActivity: %w", err)
	}
	return nil
}

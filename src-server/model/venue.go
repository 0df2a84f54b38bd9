package model

import (
	"context"
	"fmt"
	"time"

	"tangocal/src-server/timezone"

	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID      string `bun:"id,pk" json:"id"`             // required
	AppID   string `bun:"app_id,notnull" json:"appId"` // required
	Name    string `bun:"name,notnull" json:"name"`    // required
	Address string `bun:"address" json:"address"`
	City    string `bun:"city" json:"city"`
	State   string `bun:"state" json:"state"`
	Country string `bun:"country" json:"country"`

	Lat float64 `bun:"lat" json:"lat"`
	Lng float64 `bun:"lng" json:"lng"`

	// IANA zone identifier; stored so a later correction fixes every future
	// display without touching event rows
	Timezone string `bun:"timezone" json:"timezone"`

	IsActive   bool `bun:"is_active" json:"isActive"`
	IsArchived bool `bun:"is_archived" json:"isArchived"`

	ReactivatedAtUnixUTC int64  `bun:"reactivated_at" json:"reactivatedAt,omitempty"`
	ReactivationReason   string `bun:"reactivation_reason" json:"reactivationReason,omitempty"`

	CreatedAt int64 `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt int64 `bun:"updated_at" json:"updatedAt"`
}

// DetectTimezone fills a blank timezone from the venue's location data.
// Priority: existing zone, city, state, country, then the legacy default.
func (v *Venue) DetectTimezone() string {
	if v.Timezone != "" {
		return v.Timezone
	}
	return timezone.ForLocation(v.City, v.State, v.Country)
}

func (v *Venue) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case v.ID == "":
		return fmt.Errorf("(*Venue).Upsert: venue id is blank")
	case v.Name == "":
		return fmt.Errorf("(*Venue).Upsert: name is blank")
	}
	if v.AppID == "" {
		v.AppID = "1"
	}
	if v.Timezone == "" {
		v.Timezone = v.DetectTimezone()
	}
	if v.CreatedAt == 0 {
		v.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Venue)(nil)).
		Where("id = ?", v.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Venue).Upsert: %w", err)
	}

	switch exists {
	case true:
		v.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(v).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Venue).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(v).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Venue).Upsert: %w", err)
		}
	}

	return nil
}

package model

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/uptrace/bun"
)

type Organizer struct {
	bun.BaseModel `bun:"table:organizers"`

	ID    string `bun:"id,pk" json:"id"`             // required
	AppID string `bun:"app_id,notnull" json:"appId"` // required
	Name  string `bun:"name,notnull" json:"name"`    // required
	Email string `bun:"email" json:"email"`
	Phone string `bun:"phone" json:"phone"`
	URL   string `bun:"url" json:"url"`

	IsActive bool `bun:"is_active" json:"isActive"`

	CreatedAt int64 `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt int64 `bun:"updated_at" json:"updatedAt"`
}

func (o *Organizer) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case o.ID == "":
		return fmt.Errorf("(*Organizer).Upsert: organizer id is blank")
	case o.Name == "":
		return fmt.Errorf("(*Organizer).Upsert: name is blank")
	case o.URL != "":
		if _, err := url.ParseRequestURI(o.URL); err != nil {
			return fmt.Errorf("(*Organizer).Upsert: url is invalid: %w", err)
		}
	}
	if o.AppID == "" {
		o.AppID = "1"
	}
	if o.CreatedAt == 0 {
		o.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Organizer)(nil)).
		Where("id = ?", o.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Organizer).Upsert: %w", err)
	}

	switch exists {
	case true:
		o.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(o).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Organizer).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(o).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Organizer).Upsert: %w", err)
		}
	}

	return nil
}

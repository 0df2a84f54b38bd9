package model

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories"`

	ID           string `bun:"id,pk" json:"id"`                            // required
	AppID        string `bun:"app_id,notnull" json:"appId"`                // required
	CategoryName string `bun:"category_name,notnull" json:"categoryName"` // required
	Description  string `bun:"description" json:"description"`
	Color        string `bun:"color" json:"color"`

	CreatedAt int64 `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt int64 `bun:"updated_at" json:"updatedAt"`
}

func (c *Category) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case c.ID == "":
		return fmt.Errorf("(*Category).Upsert: category id is blank")
	case c.CategoryName == "":
		return fmt.Errorf("(*Category).Upsert: category name is blank")
	}
	if c.AppID == "" {
		c.AppID = "1"
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Category)(nil)).
		Where("id = ?", c.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Category).Upsert: %w", err)
	}

	switch exists {
	case true:
		c.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(c).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Category).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(c).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Category).Upsert: %w", err)
		}
	}

	return nil
}

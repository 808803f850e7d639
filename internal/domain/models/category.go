package models

import "time"

// Category — категория товаров
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}

package domain

import "time"

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"productName"`
	Cost      int64     `json:"cost"`
	BrandID   string    `json:"brandId,omitempty"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"brandName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

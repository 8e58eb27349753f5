package domain

import "time"

// ProductGroup is a coarse product classification (e.g. IT equipment).
type ProductGroup struct {
	ID   string
	Name string
}

// ProductType is a mid-level product classification (e.g. laptop).
type ProductType struct {
	ID   string
	Name string
}

// ProductCategory is a fine-grained product classification.
type ProductCategory struct {
	ID   string
	Name string
}

// Product describes a purchasable item that assets instantiate.
// Classification references are nullable; unclassified products fall into
// the "Unknown" analytics buckets.
type Product struct {
	ID         string
	Name       string
	GroupID    *string
	TypeID     *string
	CategoryID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Group    *ProductGroup
	Type     *ProductType
	Category *ProductCategory
}

// Asset is a physical unit of equipment tracked for maintenance.
type Asset struct {
	ID           string
	AssetTag     string
	Name         string
	SerialNumber string
	ProductID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product *Product
}

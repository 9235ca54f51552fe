package types

import "github.com/cometcontrol/comet-backend/pkg/enums"

// Product is one catalog entry as stored in the flat-file catalog.
type Product struct {
	ID               string                `json:"id"`
	Slug             string                `json:"slug" validate:"required"`
	SKU              string                `json:"sku" validate:"required"`
	Category         enums.ProductCategory `json:"category" validate:"required"`
	Subcategory      string                `json:"subcategory,omitempty"`
	Featured         bool                  `json:"featured"`
	Name             LocalizedString       `json:"name"`
	ShortDescription LocalizedString       `json:"shortDescription"`
	LongDescription  LocalizedString       `json:"longDescription"`
	Images           []ProductImage        `json:"images"`
	Model3D          *Model3D              `json:"model3d,omitempty"`
	Specifications   []SpecificationGroup  `json:"specifications"`
	Documents        []ProductDocument     `json:"documents"`
	Software         []SoftwareDownload    `json:"software"`
	Accessories      []AccessoryReference  `json:"accessories"`
	Videos           []ProductVideo        `json:"videos"`
	Tags             []string              `json:"tags"`
	Status           enums.ProductStatus   `json:"status"`
	Price            *Price                `json:"price,omitempty"`
}

type ProductImage struct {
	Src string          `json:"src"`
	Alt LocalizedString `json:"alt"`
}

type Model3D struct {
	GLB    string `json:"glb"`
	Poster string `json:"poster"`
}

type SpecificationGroup struct {
	Group LocalizedString     `json:"group"`
	Items []SpecificationItem `json:"items"`
}

type SpecificationItem struct {
	Label LocalizedString `json:"label"`
	Value string          `json:"value"`
	Unit  string          `json:"unit,omitempty"`
}

type ProductDocument struct {
	Type     string          `json:"type"`
	Title    LocalizedString `json:"title"`
	File     string          `json:"file"`
	FileSize string          `json:"fileSize,omitempty"`
	Language string          `json:"language,omitempty"`
}

type SoftwareDownload struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description LocalizedString `json:"description"`
	File        string          `json:"file"`
	FileSize    string          `json:"fileSize,omitempty"`
	Platform    string          `json:"platform,omitempty"`
	ReleaseDate string          `json:"releaseDate,omitempty"`
}

type AccessoryReference struct {
	ProductID    string `json:"productId"`
	Relationship string `json:"relationship"`
}

type ProductVideo struct {
	Title     LocalizedString `json:"title"`
	URL       string          `json:"url"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Duration  string          `json:"duration,omitempty"`
}

// Package catalog holds the boundary types for product data coming from the
// backend. The backend has shipped several inconsistent shapes over time
// (imageUrl as a string or an array, a legacy images array, category as an id
// or an embedded object); each shape is resolved exactly once when a product
// is decoded, so nothing downstream ever sniffs raw JSON again.
package catalog

import (
	"encoding/json"
	"fmt"
)

// ImageKind discriminates which backend shape an image reference came from.
type ImageKind int

const (
	// ImageNone means the product carried no usable image reference.
	ImageNone ImageKind = iota

	// ImageDirect is the current shape: an imageUrl string, or the first
	// element of an imageUrl array.
	ImageDirect

	// ImageLegacy is the old shape: the first entry of an images array of
	// {img_url} objects.
	ImageLegacy
)

// ImageRef is a resolved product image reference.
type ImageRef struct {
	Kind ImageKind `json:"kind"`
	URL  string    `json:"url,omitempty"`
}

// DirectImage builds an ImageRef for the current imageUrl shape.
func DirectImage(url string) ImageRef {
	return ImageRef{Kind: ImageDirect, URL: url}
}

// LegacyImage builds an ImageRef for the old images[].img_url shape.
func LegacyImage(url string) ImageRef {
	return ImageRef{Kind: ImageLegacy, URL: url}
}

// Category is one entry from the category listing endpoint.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Product is one catalog entry as consumed by the cart and the UI.
type Product struct {
	ID          string
	Name        string
	Price       float64
	CategoryID  string
	Description string
	Image       ImageRef
}

// UnmarshalJSON decodes the backend product shape, resolving the image and
// category variants in one place.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"_id"`
		Name        string          `json:"name"`
		Price       float64         `json:"price"`
		Category    json.RawMessage `json:"category"`
		Description string          `json:"description"`
		ImageURL    json.RawMessage `json:"imageUrl"`
		Images      []struct {
			ImgURL string `json:"img_url"`
		} `json:"images"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse product: %w", err)
	}

	p.ID = raw.ID
	p.Name = raw.Name
	p.Price = raw.Price
	p.Description = raw.Description
	p.CategoryID = resolveCategory(raw.Category)
	p.Image = resolveImage(raw.ImageURL, raw.Images)

	return nil
}

// resolveCategory accepts either a bare category id or an embedded
// {_id, name} object.
func resolveCategory(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}

	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}

	return ""
}

// resolveImage prefers the current imageUrl field (string or array), then
// falls back to the legacy images array.
func resolveImage(imageURL json.RawMessage, images []struct {
	ImgURL string `json:"img_url"`
}) ImageRef {
	if len(imageURL) > 0 {
		var single string
		if err := json.Unmarshal(imageURL, &single); err == nil && single != "" {
			return DirectImage(single)
		}

		var many []string
		if err := json.Unmarshal(imageURL, &many); err == nil && len(many) > 0 && many[0] != "" {
			return DirectImage(many[0])
		}
	}

	if len(images) > 0 && images[0].ImgURL != "" {
		return LegacyImage(images[0].ImgURL)
	}

	return ImageRef{Kind: ImageNone}
}

package models

// PriceDrop describes a product price change to broadcast to wishlist holders.
type PriceDrop struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage,omitempty"`
	OldPrice     float64 `json:"oldPrice"`
	NewPrice     float64 `json:"newPrice"`
}

// UploadResult is returned after a successful profile-image upload.
type UploadResult struct {
	PhotoURL string `json:"photoURL"`
	PublicID string `json:"publicId"`
}

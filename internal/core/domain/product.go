package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Review is a customer review embedded in a product document.
type Review struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    string    `json:"user" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Product is a catalog item. Wishlist entries reference products by ID.
type Product struct {
	ID           string            `json:"_id" bson:"_id,omitempty"`
	Name         string            `json:"name" bson:"name"`
	Description  string            `json:"description" bson:"description"`
	Price        float64           `json:"price" bson:"price"`
	MRP          float64           `json:"mrp,omitempty" bson:"mrp,omitempty"`
	Image        string            `json:"image" bson:"image"`
	Images       []string          `json:"images,omitempty" bson:"images,omitempty"`
	Brand        string            `json:"brand" bson:"brand"`
	Category     string            `json:"category" bson:"category"`
	Subcategory  string            `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	CountInStock int               `json:"countInStock" bson:"count_in_stock"`
	Rating       float64           `json:"rating" bson:"rating"`
	NumReviews   int               `json:"numReviews" bson:"num_reviews"`
	Reviews      []Review          `json:"reviews,omitempty" bson:"reviews,omitempty"`
	IsNew        bool              `json:"isNew" bson:"is_new"`
	IsFeatured   bool              `json:"isFeatured" bson:"is_featured"`
	Specs        map[string]string `json:"specs,omitempty" bson:"specs,omitempty"`
	CreatedAt    time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updatedAt" bson:"updated_at"`
}

package catalog

import "time"

// Product is the document stored in the products table.
// Price and stock are non-negative; ProductID is immutable once assigned.
type Product struct {
	ProductID   string    `dynamodbav:"product_id" json:"productId"` // PK
	Name        string    `dynamodbav:"name" json:"name"`
	Description string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Price       float64   `dynamodbav:"price" json:"price"`
	Images      []string  `dynamodbav:"images,omitempty" json:"images,omitempty"`
	Category    string    `dynamodbav:"category,omitempty" json:"category,omitempty"`
	Sizes       []string  `dynamodbav:"sizes,omitempty" json:"sizes,omitempty"`
	Colors      []string  `dynamodbav:"colors,omitempty" json:"colors,omitempty"`
	Stock       int       `dynamodbav:"stock" json:"stock"`
	Featured    bool      `dynamodbav:"featured" json:"featured"`
	CreatedAt   time.Time `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `dynamodbav:"updated_at" json:"updatedAt"`
}

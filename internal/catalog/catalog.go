package catalog

import "errors"

// ErrProductNotFound is returned when a product id is unknown.
var ErrProductNotFound = errors.New("product not found")

// Product is a storefront catalog entry. Price is in the store's display
// currency (whole naira); PriceMinor converts to the gateway's minor unit.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

// PriceMinor returns the price in kobo.
func (p Product) PriceMinor() int64 {
	return p.Price * 100
}

// Catalog is the static in-memory product list. There is no inventory
// management; the list never changes at runtime.
type Catalog struct {
	products []Product
}

// New creates a catalog with the given products, or the default storefront
// lineup when none are given.
func New(products ...Product) *Catalog {
	if len(products) == 0 {
		products = defaultProducts()
	}
	return &Catalog{products: products}
}

// List returns all products in display order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int) (Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

func defaultProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Wireless Pro Headphones",
			Description: "Premium noise-cancelling wireless headphones with 30hr battery life and superior sound quality.",
			Price:       45000,
			Icon:        "fa-headphones",
			Features:    []string{"30hr Battery", "Noise Cancelling", "Wireless Charging"},
		},
		{
			ID:          2,
			Name:        "Smart Fitness Watch",
			Description: "Advanced fitness tracking with heart rate monitoring, GPS, and smartphone notifications.",
			Price:       35000,
			Icon:        "fa-clock",
			Features:    []string{"Heart Rate Monitor", "GPS Tracking", "Water Resistant"},
		},
		{
			ID:          3,
			Name:        "Ultra HD Camera",
			Description: "Professional 4K camera with advanced image stabilization and wireless connectivity.",
			Price:       89000,
			Icon:        "fa-camera",
			Features:    []string{"4K Video", "Image Stabilization", "WiFi Connect"},
		},
	}
}

package domain

// Product is a cleaned catalog record. All numeric fields have already been
// parsed from their raw spreadsheet representation; rows carrying the invalid
// rating sentinel never make it into a Product.
type Product struct {
	ID              string  `json:"product_id"`
	Name            string  `json:"product_name"`
	Category        string  `json:"category"`
	BroadCategory   string  `json:"broad_category"`
	ActualPrice     float64 `json:"actual_price"`
	DiscountedPrice float64 `json:"discounted_price"`
	DiscountPercent float64 `json:"discount_percentage"`
	Rating          float64 `json:"rating"`
	RatingCount     int64   `json:"rating_count"`
	ReviewContent   string  `json:"review_content,omitempty"`
	AboutProduct    string  `json:"about_product,omitempty"`
}

// TextColumn selects which free-text field feeds the word analysis.
type TextColumn string

const (
	TextReviewContent TextColumn = "review_content"
	TextAboutProduct  TextColumn = "about_product"
)

// Valid reports whether the column name is one of the recognized text sources.
func (c TextColumn) Valid() bool {
	return c == TextReviewContent || c == TextAboutProduct
}

// Text returns the selected free-text field of a product.
func (c TextColumn) Text(p Product) string {
	if c == TextAboutProduct {
		return p.AboutProduct
	}
	return p.ReviewContent
}

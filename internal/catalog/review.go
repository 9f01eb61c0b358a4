package catalog

// Review is one customer review of a product.
type Review struct {
	ID        string `json:"_id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// AverageRating derives the displayed score from a product's reviews. This is
// the only place the aggregate is computed; render sites must not redo the
// arithmetic. A product without reviews shows the default five stars.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 5
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}

	return float64(sum) / float64(len(reviews))
}

package cart

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

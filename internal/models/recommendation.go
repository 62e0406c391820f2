package models

// Recommendation is the value returned by the shopping assistant.
type Recommendation struct {
	ProductID    string           `json:"productId"`
	Confidence   float64          `json:"confidence"`
	Reasoning    string           `json:"reasoning"`
	Alternatives []Recommendation `json:"alternatives"`
}

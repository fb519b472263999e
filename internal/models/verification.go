package models

// ImageAnalysis is the auto-fill suggestion extracted from a reference photo.
type ImageAnalysis struct {
	ItemName          string  `json:"itemName"`
	Description       string  `json:"description"`
	EstimatedPrice    float64 `json:"estimatedPrice"`
	SuggestedLocation string  `json:"suggestedLocation"`
	Tag               string  `json:"tag"`
}

// VerificationResult is the outcome of comparing a proof photo with a wish description.
type VerificationResult struct {
	MatchScore  float64 `json:"matchScore"` // 0-100
	Reasoning   string  `json:"reasoning"`
	IsAuthentic bool    `json:"isAuthentic"`
}

package domain

import "time"

type ImageType string

const (
	ImageTypePickup ImageType = "PICKUP"
	ImageTypeReturn ImageType = "RETURN"
)

// EvidenceImage is a handover photo attached to a transaction. The list is
// append-only; entries are never mutated or deleted by the client.
type EvidenceImage struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Type          ImageType `json:"type"`
	URL           string    `json:"url"`
	CreatedOn     time.Time `json:"created_on"`
}

func HasImageOfType(images []EvidenceImage, imageType ImageType) bool {
	for _, img := range images {
		if img.Type == imageType {
			return true
		}
	}
	return false
}

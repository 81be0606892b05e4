package domain

import "time"

// FullTransactionDetails is the immutable snapshot the lifecycle engine
// publishes. It is rebuilt from scratch on every load or poll tick and
// replaced atomically, so readers never observe a mix of old request and
// new transaction data.
type FullTransactionDetails struct {
	Request     *RentalRequest
	Transaction *RentalTransaction
	Item        *Item
	Images      []EvidenceImage
	ViewerID    string
	Step        RentalStep
	LoadedAt    time.Time
}

func (d *FullTransactionDetails) ViewerIsOwner() bool {
	return d != nil && d.Item != nil && d.ViewerID != "" && d.ViewerID == d.Item.OwnerID
}

func (d *FullTransactionDetails) ViewerIsRenter() bool {
	return d != nil && d.Request != nil && d.ViewerID != "" && d.ViewerID == d.Request.RenterID
}

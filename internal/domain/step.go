package domain

import "time"

// RentalStep is the single canonical phase of a rental transaction's
// lifecycle. It is derived from raw request/transaction/evidence data on
// every load and never stored.
type RentalStep string

const (
	StepRequestCreated       RentalStep = "REQUEST_CREATED"
	StepOwnerConfirmed       RentalStep = "OWNER_CONFIRMED"
	StepPickupImagesUploaded RentalStep = "PICKUP_IMAGES_UPLOADED"
	StepPaymentCompleted     RentalStep = "PAYMENT_COMPLETED"
	StepItemPickedUp         RentalStep = "ITEM_PICKED_UP"
	StepRentalActive         RentalStep = "RENTAL_ACTIVE"
	StepRentalDue            RentalStep = "RENTAL_DUE"
	StepReturnImagesUploaded RentalStep = "RETURN_IMAGES_UPLOADED"
	StepCompleted            RentalStep = "COMPLETED"
)

// ResolveStep maps the combined, possibly inconsistent remote state to one
// canonical step. The rule order is the business contract: several
// conditions overlap and the first match wins, which is what lets the cash
// and bank-transfer flows share one step vocabulary. Missing timestamps or
// a missing transaction simply leave their conditions unsatisfied; the
// function is total and never panics.
func ResolveStep(req *RentalRequest, txn *RentalTransaction, images []EvidenceImage, now time.Time) RentalStep {
	if req == nil {
		return StepRequestCreated
	}

	hasPickup := HasImageOfType(images, ImageTypePickup)
	hasReturn := HasImageOfType(images, ImageTypeReturn)
	paid := txn.IsPaid()

	switch {
	case req.Status == RequestStatusCompleted:
		return StepCompleted
	case hasReturn:
		return StepReturnImagesUploaded
	case paid && nowAfter(req.RentalEndTime, now):
		return StepRentalDue
	case paid && hasPickup && nowAfter(req.RentalStartTime, now) && nowAtOrBefore(req.RentalEndTime, now):
		return StepRentalActive
	case paid && hasPickup && nowAtOrBefore(req.RentalStartTime, now):
		return StepItemPickedUp
	case paid && !hasPickup:
		return StepPaymentCompleted
	case hasPickup && !paid && req.Status == RequestStatusConfirmed:
		// Cash rentals park here until the owner confirms receipt.
		return StepPickupImagesUploaded
	case req.Status == RequestStatusConfirmed && !hasPickup:
		return StepOwnerConfirmed
	default:
		return StepRequestCreated
	}
}

func nowAfter(t *time.Time, now time.Time) bool {
	return t != nil && now.After(*t)
}

func nowAtOrBefore(t *time.Time, now time.Time) bool {
	return t != nil && !now.After(*t)
}

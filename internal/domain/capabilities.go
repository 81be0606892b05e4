package domain

import "time"

// Capabilities lists the commands currently legal for the viewer. The UI
// must never offer an action whose flag is false, and the controller
// re-checks the flag again before issuing the remote call.
type Capabilities struct {
	OwnerConfirmRequest        bool `json:"owner_confirm_request"`
	OwnerUploadPickupEvidence  bool `json:"owner_upload_pickup_evidence"`
	OwnerConfirmCashPayment    bool `json:"owner_confirm_cash_payment"`
	OwnerComplete              bool `json:"owner_complete"`
	RenterMakePayment          bool `json:"renter_make_payment"`
	RenterConfirmPickup        bool `json:"renter_confirm_pickup"`
	RenterUploadReturnEvidence bool `json:"renter_upload_return_evidence"`
	ShowBankingPendingHint     bool `json:"show_banking_pending_hint"`

	CanProgress   bool   `json:"can_progress"`
	BlockedReason string `json:"blocked_reason,omitempty"`
}

// ResolveCapabilities derives the permitted command set from the resolved
// step and the viewer's role. Pure and total: missing data just disables
// the affected commands.
func ResolveCapabilities(d *FullTransactionDetails, viewerIsOwner, viewerIsRenter bool, now time.Time) Capabilities {
	caps := Capabilities{CanProgress: true}
	if d == nil || d.Request == nil {
		return caps
	}

	req := d.Request
	txn := d.Transaction
	hasPickup := HasImageOfType(d.Images, ImageTypePickup)

	if viewerIsOwner {
		caps.OwnerConfirmRequest = d.Step == StepRequestCreated
		caps.OwnerUploadPickupEvidence = d.Step == StepOwnerConfirmed
		caps.OwnerConfirmCashPayment = txn != nil &&
			txn.PaymentMethod == PaymentMethodCash &&
			txn.PaymentStatus != PaymentStatusPaid &&
			req.Status == RequestStatusConfirmed &&
			hasPickup
		caps.OwnerComplete = d.Step == StepReturnImagesUploaded
	}

	if viewerIsRenter {
		caps.RenterMakePayment = d.Step == StepPickupImagesUploaded &&
			txn != nil && txn.PaymentStatus != PaymentStatusPaid
		caps.RenterConfirmPickup = d.Step == StepPaymentCompleted
		caps.RenterUploadReturnEvidence = d.Step == StepRentalActive || d.Step == StepRentalDue
	}

	caps.ShowBankingPendingHint = txn.AwaitingBankTransfer()

	// Payment can clear before the rental window opens; pickup confirmation
	// has to wait until the agreed start time.
	if d.Step == StepPaymentCompleted && req.RentalStartTime != nil && now.Before(*req.RentalStartTime) {
		caps.CanProgress = false
		caps.BlockedReason = "payment received; pickup can be confirmed once the rental period starts"
	}

	return caps
}

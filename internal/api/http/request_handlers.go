package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/logger"
	"rentmate-client-core/internal/repository"
)

func (a *API) HandleGetRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req, err := a.requests.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

var validStatuses = map[domain.RequestStatus]bool{
	domain.RequestStatusPending:   true,
	domain.RequestStatusConfirmed: true,
	domain.RequestStatusRenting:   true,
	domain.RequestStatusReturned:  true,
	domain.RequestStatusCompleted: true,
	domain.RequestStatusCancelled: true,
	domain.RequestStatusRejected:  true,
}

// HandleUpdateRequestStatus applies a status-update command. Moving to
// CONFIRMED also creates the rental transaction, mirroring the production
// service where the transaction appears once the owner engages.
func (a *API) HandleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		Status        domain.RequestStatus `json:"status"`
		PaymentMethod domain.PaymentMethod `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStatuses[body.Status] {
		writeError(w, http.StatusBadRequest, "unknown request status")
		return
	}

	req, err := a.requests.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	if body.Status == domain.RequestStatusConfirmed {
		if err := a.ensureTransaction(r, req, body.PaymentMethod); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, req)
}

func (a *API) ensureTransaction(r *http.Request, req *domain.RentalRequest, method domain.PaymentMethod) error {
	_, err := a.transactions.GetByRequestID(r.Context(), req.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if method == "" {
		method = domain.PaymentMethodCash
	}
	rental, deposit := a.priceFor(r, req)
	txn := &domain.RentalTransaction{
		ID:                 uuid.NewString(),
		RequestID:          req.ID,
		PaymentMethod:      method,
		PaymentStatus:      domain.PaymentStatusPending,
		RentalAmountCents:  rental,
		DepositAmountCents: deposit,
		TotalAmountCents:   rental + deposit,
	}
	logger.Info("Creating transaction for confirmed request", "request_id", req.ID, "transaction_id", txn.ID, "payment_method", method)
	return a.transactions.Create(r.Context(), txn)
}

// priceFor charges full days inclusive of both end dates, the way the
// marketplace bills.
func (a *API) priceFor(r *http.Request, req *domain.RentalRequest) (rental, deposit int64) {
	item, err := a.items.GetByID(r.Context(), req.ItemID)
	if err != nil {
		return 0, 0
	}
	days := int64(1)
	if req.RentalStartTime != nil && req.RentalEndTime != nil {
		diff := int64(req.RentalEndTime.Sub(*req.RentalStartTime).Hours() / 24)
		if diff >= 0 {
			days = diff + 1
		}
	}
	return item.PricePerDayCents * days, item.DepositAmountCents
}

func (a *API) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, err := a.items.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

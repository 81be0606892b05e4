package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/logger"
)

const maxUploadBytes = 32 << 20

func (a *API) HandleGetTransactionByRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	txn, err := a.transactions.GetByRequestID(r.Context(), requestID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (a *API) HandleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		PaymentStatus domain.PaymentStatus `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.PaymentStatus != domain.PaymentStatusPaid && body.PaymentStatus != domain.PaymentStatusPending {
		writeError(w, http.StatusBadRequest, "unknown payment status")
		return
	}

	txn, err := a.transactions.UpdatePaymentStatus(r.Context(), id, body.PaymentStatus)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	logger.Info("Payment status updated", "transaction_id", id, "payment_status", body.PaymentStatus)
	writeJSON(w, http.StatusOK, txn)
}

func (a *API) HandleListEvidence(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	images, err := a.evidence.ListByTransaction(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if images == nil {
		images = []domain.EvidenceImage{}
	}
	writeJSON(w, http.StatusOK, images)
}

// HandleUploadEvidence accepts a multipart upload with a "type" field and
// one or more "images" files, stores the files under the upload dir, and
// appends evidence records. Records are append-only.
func (a *API) HandleUploadEvidence(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["id"]
	if _, err := a.transactions.GetByID(r.Context(), transactionID); err != nil {
		writeRepoError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	imageType := domain.ImageType(r.FormValue("type"))
	if imageType != domain.ImageTypePickup && imageType != domain.ImageTypeReturn {
		writeError(w, http.StatusBadRequest, "type must be PICKUP or RETURN")
		return
	}
	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		writeError(w, http.StatusBadRequest, "no images provided")
		return
	}

	var created []domain.EvidenceImage
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}

		imageID := uuid.NewString()
		filename := imageID + filepath.Ext(fh.Filename)
		if err := a.saveFile(filename, src); err != nil {
			src.Close()
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		src.Close()

		img := domain.EvidenceImage{
			ID:            imageID,
			TransactionID: transactionID,
			Type:          imageType,
			URL:           fmt.Sprintf("%s/media/%s", a.mediaBaseURL, filename),
		}
		if err := a.evidence.Create(r.Context(), &img); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		created = append(created, img)
	}

	logger.Info("Evidence images uploaded", "transaction_id", transactionID, "type", imageType, "count", len(created))
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) saveFile(filename string, src io.Reader) error {
	if a.uploadDir == "" {
		// No storage configured; the record still gets a URL.
		_, err := io.Copy(io.Discard, src)
		return err
	}
	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(a.uploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// Package http serves the stub marketplace API the lifecycle engine
// consumes during local development. It plays the same role the mock
// storage HTTP server plays for image uploads: a faithful collaborator
// stand-in, not production infrastructure.
package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"rentmate-client-core/internal/identity"
	"rentmate-client-core/internal/repository"
)

// API bundles the stub server's handlers and their dependencies.
type API struct {
	requests     repository.RequestRepository
	transactions repository.TransactionRepository
	evidence     repository.EvidenceRepository
	items        repository.ItemRepository
	tokens       identity.TokenManager

	uploadDir    string
	mediaBaseURL string
}

func NewAPI(
	requests repository.RequestRepository,
	transactions repository.TransactionRepository,
	evidence repository.EvidenceRepository,
	items repository.ItemRepository,
	tokens identity.TokenManager,
	uploadDir, mediaBaseURL string,
) *API {
	return &API{
		requests:     requests,
		transactions: transactions,
		evidence:     evidence,
		items:        items,
		tokens:       tokens,
		uploadDir:    uploadDir,
		mediaBaseURL: strings.TrimRight(mediaBaseURL, "/"),
	}
}

// Router builds the mux router with all collaborator routes registered.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/v1/auth/dev-token", a.HandleDevToken).Methods(http.MethodPost)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(a.authMiddleware)
	v1.HandleFunc("/auth/whoami", a.HandleWhoAmI).Methods(http.MethodGet)
	v1.HandleFunc("/requests/{id}", a.HandleGetRequest).Methods(http.MethodGet)
	v1.HandleFunc("/requests/{id}/status", a.HandleUpdateRequestStatus).Methods(http.MethodPatch)
	v1.HandleFunc("/requests/{id}/transaction", a.HandleGetTransactionByRequest).Methods(http.MethodGet)
	v1.HandleFunc("/transactions/{id}/payment", a.HandleConfirmPayment).Methods(http.MethodPost)
	v1.HandleFunc("/transactions/{id}/images", a.HandleListEvidence).Methods(http.MethodGet)
	v1.HandleFunc("/transactions/{id}/images", a.HandleUploadEvidence).Methods(http.MethodPost)
	v1.HandleFunc("/items/{id}", a.HandleGetItem).Methods(http.MethodGet)

	if a.uploadDir != "" {
		r.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(a.uploadDir))))
	}

	return r
}

type contextKey string

const viewerIDKey contextKey = "viewer_id"

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := a.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		viewerID := claims.UserID
		if viewerID == "" {
			viewerID = claims.Subject
		}
		ctx := contextWithViewer(r.Context(), viewerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

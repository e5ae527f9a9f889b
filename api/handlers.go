package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tinydb/auth"
	"tinydb/storage"

	"github.com/gorilla/mux"
)

type Handlers struct {
	storage      storage.Storage
	authService  *auth.AuthService
	defaultRoles []string
}

func NewHandlers(storage storage.Storage, authService *auth.AuthService, defaultRoles []string) *Handlers {
	return &Handlers{
		storage:      storage,
		authService:  authService,
		defaultRoles: defaultRoles,
	}
}

// Handler for reading the full dataset
func (h *Handlers) GetDatasetHandler(w http.ResponseWriter, r *http.Request) {
	data, err := h.storage.Read()
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	if data == nil {
		http.Error(w, "Dataset is empty", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// Handler for replacing the full dataset
func (h *Handlers) PutDatasetHandler(w http.ResponseWriter, r *http.Request) {
	var data storage.Dataset
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.storage.Write(data); err != nil {
		log.Printf("Error writing dataset: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "written",
		"keys":   len(data),
	})
}

// Handler for clearing the dataset (a full replace with the empty dataset)
func (h *Handlers) ClearDatasetHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Write(storage.Dataset{}); err != nil {
		log.Printf("Error clearing dataset: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}

// Handler for reading a single key. The projection is computed here;
// the storage layer itself only moves whole datasets.
func (h *Handlers) GetKeyHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	data, err := h.storage.Read()
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	sub, exists := data[key]
	if !exists {
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sub)
}

// Handler for reading a single sub-key
func (h *Handlers) GetSubkeyHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key, subkey := vars["key"], vars["subkey"]

	data, err := h.storage.Read()
	if err != nil {
		h.writeStorageError(w, r, err)
		return
	}

	sub, exists := data[key]
	if !exists {
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}
	value, exists := sub[subkey]
	if !exists {
		http.Error(w, "Subkey not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"key":    key,
		"subkey": subkey,
		"value":  value,
	})
}

// Health check processor
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.storage.Read(); err != nil {
		http.Error(w, "Storage unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"storage": "available",
	})
}

type tokenRequest struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
}

// Handler for issuing auth tokens
func (h *Handlers) TokenHandler(w http.ResponseWriter, r *http.Request) {
	if h.authService == nil {
		http.Error(w, "Authentication is disabled", http.StatusNotFound)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = h.defaultRoles
	}

	token, err := h.authService.GenerateToken(req.UserID, roles)
	if err != nil {
		log.Printf("Error generating token for %s: %v", req.UserID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *Handlers) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrCorruptDataset) {
		log.Printf("Corrupt dataset on %s: %v", r.URL.Path, err)
		http.Error(w, "Stored dataset is corrupt", http.StatusInternalServerError)
		return
	}

	log.Printf("Storage error on %s: %v", r.URL.Path, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentledger/internal/service"

	"github.com/gorilla/mux"
)

type AssetHandler struct {
	catalogSvc service.CatalogService
}

func NewAssetHandler(catalogSvc service.CatalogService) *AssetHandler {
	return &AssetHandler{catalogSvc: catalogSvc}
}

type assetRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	FeePerUnitCents int64  `json:"fee_per_unit_cents"`
	BondCents       int64  `json:"bond_cents"`
}

func (h *AssetHandler) Register(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	asset, err := h.catalogSvc.RegisterAsset(r.Context(), callerID, req.Name, req.Description, req.FeePerUnitCents, req.BondCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	assetID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := h.catalogSvc.GetAsset(r.Context(), assetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	assetID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	asset, err := h.catalogSvc.UpdateAsset(r.Context(), callerID, assetID, req.Name, req.Description, req.FeePerUnitCents, req.BondCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	assetID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	asset, err := h.catalogSvc.SetAvailability(r.Context(), callerID, assetID, req.Available)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	page, pageSize := pagination(r)

	var (
		assets interface{}
		count  int64
	)
	if r.URL.Query().Get("mine") == "true" {
		assets, count, err = h.catalogSvc.ListAssetsByOwner(r.Context(), callerID, page, pageSize)
	} else {
		assets, count, err = h.catalogSvc.ListAvailableAssets(r.Context(), page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
		"total":  count,
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func pagination(r *http.Request) (page, pageSize int64) {
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	pageSize, _ = strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

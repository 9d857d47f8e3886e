package asset

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hmaulana/maintenance-management/internal/transport"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	GetAllAssets() ([]*Asset, error)
	GetByID(id int64) (*Asset, error)
	Create(dto CreateAssetDTO) (*Asset, error)
	UpdateStatus(id int64, dto UpdateStatusDTO) (*Asset, error)
	Retire(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.GetAllAssets()
	if err != nil {
		h.Logger.Error("GetAssets: failed to get assets", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get assets")
		return
	}

	h.WriteJSON(w, http.StatusOK, AssetsResponse{Assets: assets})
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := h.assetID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	domainAsset, err := h.Service.GetByID(assetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("GetAsset: service error", "error", err, "asset_id", assetID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get asset")
		return
	}

	h.WriteJSON(w, http.StatusOK, domainAsset)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domainAsset, err := h.Service.Create(dto)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			h.WriteError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, ErrDuplicateTag):
			h.WriteError(w, http.StatusConflict, "asset tag already exists")
		default:
			h.Logger.Error("CreateAsset: service error", "error", err, "tag", dto.Tag)
			h.WriteError(w, http.StatusInternalServerError, "failed to create asset")
		}
		return
	}

	h.Logger.Info("CreateAsset: asset created", "asset_id", domainAsset.ID, "tag", domainAsset.Tag)
	h.WriteJSON(w, http.StatusCreated, domainAsset)
}

func (h *Handler) UpdateAssetStatus(w http.ResponseWriter, r *http.Request) {
	assetID, err := h.assetID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	domainAsset, err := h.Service.UpdateStatus(assetID, dto)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			h.WriteError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, ErrNotFound):
			h.WriteError(w, http.StatusNotFound, "asset not found")
		default:
			h.Logger.Error("UpdateAssetStatus: service error", "error", err, "asset_id", assetID)
			h.WriteError(w, http.StatusInternalServerError, "failed to update asset status")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, domainAsset)
}

func (h *Handler) RetireAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := h.assetID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	if err := h.Service.Retire(assetID); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("RetireAsset: service error", "error", err, "asset_id", assetID)
		h.WriteError(w, http.StatusInternalServerError, "failed to retire asset")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "retired"})
}

func (h *Handler) assetID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

package handlers

import (
	"TaskBuckets/internal/middleware"
	"TaskBuckets/internal/model"
	"TaskBuckets/internal/service"
	"net/http"

	"go.uber.org/zap"
)

const bucketNotFound = "Bucket not found"

// BucketHandler — CRUD бакетов текущего пользователя.
type BucketHandler struct {
	BucketService *service.BucketService
	Logger        *zap.SugaredLogger
}

func NewBucketHandler(bucketService *service.BucketService, logger *zap.SugaredLogger) *BucketHandler {
	return &BucketHandler{BucketService: bucketService, Logger: logger}
}

func (h *BucketHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	buckets, err := h.BucketService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, err, bucketNotFound)
		return
	}
	if buckets == nil {
		buckets = []model.Bucket{}
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (h *BucketHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid bucket id")
		return
	}
	b, err := h.BucketService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.Logger, err, bucketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BucketHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	var in model.BucketInput
	if err := decodeJSON(r, &in); err != nil {
		h.Logger.Warnw("create bucket: bad json", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.BucketService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, err, bucketNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BucketHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid bucket id")
		return
	}
	var patch model.BucketPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.Logger.Warnw("update bucket: bad json", "error", err, "id", id)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.BucketService.Update(r.Context(), userID, id, patch)
	if err != nil {
		writeServiceError(w, h.Logger, err, bucketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BucketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid bucket id")
		return
	}
	if err := h.BucketService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, err, bucketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

package handlers

import (
	"TaskBuckets/internal/middleware"
	"TaskBuckets/internal/model"
	"TaskBuckets/internal/service"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const taskNotFound = "Task not found"

// ActionToggle — единственное поддерживаемое действие PATCH /api/tasks/{id}.
const ActionToggle = "toggle"

// TaskHandler — CRUD задач текущего пользователя.
type TaskHandler struct {
	TaskService *service.TaskService
	Logger      *zap.SugaredLogger
}

func NewTaskHandler(taskService *service.TaskService, logger *zap.SugaredLogger) *TaskHandler {
	return &TaskHandler{TaskService: taskService, Logger: logger}
}

type patchRequest struct {
	Action string `json:"action"`
}

// List отдаёт задачи пользователя; ?bucketId= сужает выборку до одного бакета.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var bucketID *int64
	if raw := r.URL.Query().Get("bucketId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.Logger.Warnw("list tasks: bad bucketId", "bucketId", raw)
			writeError(w, http.StatusBadRequest, "Invalid bucketId")
			return
		}
		bucketID = &id
	}

	tasks, err := h.TaskService.List(r.Context(), userID, bucketID)
	if err != nil {
		writeServiceError(w, h.Logger, err, taskNotFound)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	t, err := h.TaskService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.Logger, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	var in model.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		h.Logger.Warnw("create task: bad json", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.TaskService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	var patch model.TaskPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.Logger.Warnw("update task: bad json", "error", err, "id", id)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.TaskService.Update(r.Context(), userID, id, patch)
	if err != nil {
		writeServiceError(w, h.Logger, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Patch выполняет действие над задачей; пока поддерживается только toggle.
func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	var req patchRequest
	if err := decodeJSON(r, &req); err != nil || req.Action != ActionToggle {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	t, err := h.TaskService.Toggle(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.Logger, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	if err := h.TaskService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aicockpit/aicockpit/internal/models"
	"github.com/aicockpit/aicockpit/internal/security"
	"github.com/aicockpit/aicockpit/internal/training"
)

// TrainHandler handles the training-data endpoints.
type TrainHandler struct {
	store   *training.Store
	builder *training.ContextBuilder
	audit   *security.AuditLogger
}

func NewTrainHandler(store *training.Store, builder *training.ContextBuilder, audit *security.AuditLogger) *TrainHandler {
	return &TrainHandler{store: store, builder: builder, audit: audit}
}

// Train handles POST /api/train. Fragments are stored in ddl,
// documentation, sql order; a request never drops or reorders its own
// submissions.
func (h *TrainHandler) Train(w http.ResponseWriter, r *http.Request) {
	var req models.TrainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Empty() {
		models.WriteError(w, http.StatusBadRequest, "at least one of ddl, documentation, sql is required")
		return
	}

	fragments := []struct {
		kind    training.Kind
		payload *string
	}{
		{training.KindDDL, req.DDL},
		{training.KindDocumentation, req.Documentation},
		{training.KindSQL, req.SQL},
	}
	for _, f := range fragments {
		if f.payload == nil {
			continue
		}
		if _, err := h.store.AddExample(r.Context(), f.kind, *f.payload); err != nil {
			models.WriteError(w, http.StatusInternalServerError, "training failed: "+err.Error())
			return
		}
		h.audit.LogTraining(string(f.kind), len(*f.payload))
	}

	h.builder.Invalidate()
	models.WriteJSON(w, http.StatusOK, models.TrainResponse{
		Status:  "success",
		Message: "Training completed",
	})
}

// List handles GET /api/training_data
func (h *TrainHandler) List(w http.ResponseWriter, r *http.Request) {
	examples, err := h.store.ListExamples(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "list training data: "+err.Error())
		return
	}
	if examples == nil {
		examples = []training.Example{}
	}
	models.WriteJSON(w, http.StatusOK, examples)
}

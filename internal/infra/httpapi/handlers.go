package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/reluam/pokrok/internal/app"
	"github.com/reluam/pokrok/internal/domain/instance"
)

// Handler exposes the generation endpoints. Both routes share one
// implementation parameterized by instance kind; they differ only in the
// target store and the response field name.
type Handler struct {
	generator app.Generator
	auth      Authenticator
	logger    logrus.FieldLogger
}

func NewHandler(generator app.Generator, auth Authenticator, logger logrus.FieldLogger) *Handler {
	return &Handler{generator: generator, auth: auth, logger: logger}
}

// Register attaches the automation routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/automations/generate-steps", func(w http.ResponseWriter, r *http.Request) {
		h.generate(w, r, instance.KindStep)
	})
	mux.HandleFunc("/automations/generate-events", func(w http.ResponseWriter, r *http.Request) {
		h.generate(w, r, instance.KindEvent)
	})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, kind instance.Kind) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// No request body is consumed; all inputs derive from the caller's
	// identity and stored automations.
	authID := h.auth.CurrentUserID(r)

	created, err := h.generator.GenerateForUser(r.Context(), authID, kind)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, app.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			h.logger.WithError(err).WithField("kind", kind).Error("Generation request failed")
			writeError(w, http.StatusInternalServerError, failureMessage(kind))
		}
		return
	}

	instances := make([]instanceJSON, 0, len(created))
	for _, inst := range created {
		instances = append(instances, toJSON(inst))
	}

	payload := map[string]any{
		"success":         true,
		resultField(kind): instances,
		"count":           len(instances),
	}
	writeJSON(w, http.StatusOK, payload)
}

func resultField(kind instance.Kind) string {
	if kind == instance.KindEvent {
		return "generatedEvents"
	}
	return "generatedSteps"
}

func failureMessage(kind instance.Kind) string {
	if kind == instance.KindEvent {
		return "Failed to generate automated events"
	}
	return "Failed to generate automated steps"
}

// instanceJSON is the wire shape of a generated instance, with nullable
// columns flattened to optional fields.
type instanceJSON struct {
	ID             string `json:"id"`
	GoalID         string `json:"goalId"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Completed      bool   `json:"completed"`
	Date           string `json:"date"`
	IsImportant    bool   `json:"isImportant"`
	IsUrgent       bool   `json:"isUrgent"`
	Type           string `json:"type"`
	AutomationID   string `json:"automationId,omitempty"`
	TargetMetricID string `json:"targetMetricId,omitempty"`
	TargetStepID   string `json:"targetStepId,omitempty"`
	Unit           string `json:"unit,omitempty"`
}

func toJSON(inst *instance.Instance) instanceJSON {
	return instanceJSON{
		ID:             inst.ID,
		GoalID:         inst.GoalID,
		Title:          inst.Title,
		Description:    inst.Description.String,
		Completed:      inst.Completed,
		Date:           inst.Date.Format("2006-01-02"),
		IsImportant:    inst.IsImportant,
		IsUrgent:       inst.IsUrgent,
		Type:           inst.Type,
		AutomationID:   inst.AutomationID.String,
		TargetMetricID: inst.TargetMetricID.String,
		TargetStepID:   inst.TargetStepID.String,
		Unit:           inst.Unit.String,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

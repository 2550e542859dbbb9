package calculator

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/thevarp19/rams-tech-task/internal/api"
	"github.com/thevarp19/rams-tech-task/internal/form"
	"github.com/thevarp19/rams-tech-task/internal/format"
	"github.com/thevarp19/rams-tech-task/internal/schedule"
)

type Handlers struct {
	Store *Store
	Log   *logrus.Logger
}

// paymentView is a Payment plus the display fields the table renders.
type paymentView struct {
	ID            string        `json:"id"`
	Kind          schedule.Kind `json:"kind"`
	Label         string        `json:"label"`
	Day           int           `json:"day"`
	Date          time.Time     `json:"date"`
	DateDisplay   string        `json:"dateDisplay"`
	Amount        int64         `json:"amount"`
	AmountDisplay string        `json:"amountDisplay"`
}

func viewPayments(payments []schedule.Payment) []paymentView {
	out := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentView{
			ID:            p.ID,
			Kind:          p.Kind,
			Label:         format.KindLabel(p.Kind),
			Day:           p.Day,
			Date:          p.Date,
			DateDisplay:   format.MonthYear(p.Date),
			Amount:        p.Amount,
			AmountDisplay: format.AmountWithSymbol(p.Amount),
		})
	}
	return out
}

func stateResponse(id string, st State) map[string]any {
	return map[string]any{
		"sessionId":     id,
		"form":          st.Form,
		"payments":      viewPayments(st.Payments),
		"fullPrice":     st.FullPrice,
		"apartmentArea": st.ApartmentArea,
	}
}

func (h Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, st := h.Store.Create()
	h.Log.WithField("session", id).Info("session created")
	api.WriteJSON(w, http.StatusCreated, stateResponse(id, st))
}

func (h Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := h.Store.Get(id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "session not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, stateResponse(id, st))
}

func (h Handlers) PatchForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch FormPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json body")
		return
	}

	st, err := h.Store.UpdateForm(id, patch)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "session not found")
			return
		}
		var verrs form.ValidationErrors
		if errors.As(err, &verrs) {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", verrs.Error())
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, stateResponse(id, st))
}

type editAmountRequest struct {
	Amount int64 `json:"amount"`
}

func (h Handlers) EditAmount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	paymentID := chi.URLParam(r, "paymentID")

	var req editAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json body")
		return
	}

	st, out, err := h.Store.EditAmount(id, paymentID, req.Amount)
	h.writeTransition(w, id, st, out, err)
}

func (h Handlers) AddInstallment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, out, err := h.Store.AddInstallment(id)
	h.writeTransition(w, id, st, out, err)
}

func (h Handlers) RemoveInstallment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	paymentID := chi.URLParam(r, "paymentID")
	st, out, err := h.Store.RemoveInstallment(id, paymentID)
	h.writeTransition(w, id, st, out, err)
}

type reorderRequest struct {
	OldIndex int `json:"oldIndex"`
	NewIndex int `json:"newIndex"`
}

func (h Handlers) Reorder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json body")
		return
	}

	st, out, err := h.Store.Reorder(id, req.OldIndex, req.NewIndex)
	h.writeTransition(w, id, st, out, err)
}

func (h Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var rate *decimal.Decimal
	if raw := r.URL.Query().Get("rate"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid rate")
			return
		}
		rate = &d
	}

	m, npv, err := h.Store.Summary(id, rate)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "session not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"metrics": m,
		"npv":     npv,
	})
}

func (h Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	toasts, err := h.Store.Notifications(id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "session not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": toasts})
}

// writeTransition renders an applied or rejected outcome. Rejections are
// domain results, not transport failures, so both go out as 200.
func (h Handlers) writeTransition(w http.ResponseWriter, id string, st State, out schedule.Outcome, err error) {
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "session not found")
		return
	}
	if !out.Applied {
		h.Log.WithFields(logrus.Fields{"session": id, "code": out.Code}).Warn("transition rejected")
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"applied":  out.Applied,
		"code":     out.Code,
		"message":  out.Message,
		"payments": viewPayments(st.Payments),
		"form":     st.Form,
	})
}

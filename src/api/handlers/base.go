package handlers

import (
	"encoding/json"
	"net/http"
	"painel/src/api/controllers"
	"painel/src/utils"
	"time"
)

const requestTimeout = 10 * time.Second

// panelTimeout covers every chart of a panel plus the PDF conversion.
const panelTimeout = 30 * time.Second

type Handler struct {
	Controller controllers.IController
}

func NewHandler(controller controllers.IController) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors answers with the status err maps to.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	utils.WriteError(w, err)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// attachment writes body as a download named filename.
func attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

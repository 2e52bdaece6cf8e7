// Package respond serializa el sobre de resultado que consume el frontend:
// {success:true, data} o {success:false, error, not_found?}. Ninguna operacion
// del servicio lanza hacia afuera; todo se reporta por este sobre.
package respond

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	NotFound bool   `json:"not_found,omitempty"`
}

func OK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// OKMessage agrega un mensaje de confirmacion junto a los datos.
func OKMessage(w http.ResponseWriter, status int, data any, msg string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: msg})
}

func Fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// NotFound marca el miss como resultado distinguido, no como error generico:
// el UI ofrece "crear con este chip" cuando not_found viene en true.
func NotFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: msg, NotFound: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

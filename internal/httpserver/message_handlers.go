package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"peerprep/internal/service"
)

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiverId"`
	Message    string `json:"message"`
}

func handleSendMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}

		msg, _, err := msgSvc.Send(r.Context(), user.ID, req.ReceiverID, req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		if msg == nil {
			// Suppressed duplicate: the earlier submission already persisted
			// and delivered it.
			writeJSON(w, http.StatusOK, map[string]string{"message": "duplicate suppressed"})
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

func handleGetConversation(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		idStr := chi.URLParam(r, "otherUserID")
		otherID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid user id"})
			return
		}

		msgs, err := msgSvc.GetConversation(r.Context(), user.ID, otherID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

func handleListContacts(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		contacts, err := msgSvc.ListContacts(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, contacts)
	}
}

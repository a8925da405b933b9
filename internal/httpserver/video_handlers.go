package httpserver

import (
	"encoding/json"
	"net/http"

	"peerprep/internal/service"
)

type createMeetingRequest struct {
	FriendID int64 `json:"friendId"`
}

type videoTokenRequest struct {
	RoomID string `json:"roomId"`
}

func handleCreateMeeting(meetingSvc *service.MeetingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		var req createMeetingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}

		room, err := meetingSvc.CreateMeeting(r.Context(), user.ID, req.FriendID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, room)
	}
}

func handleVideoToken(meetingSvc *service.MeetingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		var req videoTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}

		token, err := meetingSvc.AccessToken(r.Context(), user.ID, req.RoomID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

package ws

// Event type values exchanged with clients.
const (
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
	EventPing           = "ping"
	EventPong           = "pong"
	EventError          = "error"
)

// MessageEvent is the outbound delivery of a direct message.
type MessageEvent struct {
	Type     string `json:"type"`
	SenderID int64  `json:"senderId"`
	Message  string `json:"message"`
}

// CallEvent notifies the target of a video-call invitation. Carries the room
// reference so the recipient can join immediately.
type CallEvent struct {
	Type        string `json:"type"`
	SenderID    int64  `json:"senderId"`
	Message     string `json:"message"`
	IsVideoCall bool   `json:"isVideoCall"`
	RoomName    string `json:"roomName"`
	RoomID      string `json:"roomId"`
}

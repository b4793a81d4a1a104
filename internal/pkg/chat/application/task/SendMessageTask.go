package task

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	qport "go-marketplace/internal/infrastructure/queue/port"
	"go-marketplace/internal/pkg/chat/application/relay"
	"go-marketplace/internal/pkg/chat/application/usecase"
	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// SendMessageTaskType is the queue task name for the REST send path.
const SendMessageTaskType = "chat:send_message"

// SendMessageTaskPayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid coupling queue wire format to db tags.
type SendMessageTaskPayload struct {
	ChatID   int64   `json:"chatId"`
	SenderID int64   `json:"senderId"`
	Text     *string `json:"text,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// RegisterSendMessageTask binds the handler to the queue server. The handler
// persists through the same use case the socket relay uses and fans the stored
// message out to any sessions in the room on this instance.
func RegisterSendMessageTask(srv qport.Server, repo repository.ChatRepository, rooms relay.RoomBroadcaster, log *zap.SugaredLogger) {
	uc := usecase.NewSendMessageUseCase(repo)

	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payload will not improve on retry.
			log.Errorw("malformed send_message task payload", "err", err)
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		msg, err := uc.Execute(ctx, usecase.SendMessageInput{
			ChatID:   p.ChatID,
			SenderID: p.SenderID,
			Text:     p.Text,
			Image:    p.Image,
		})
		if err != nil {
			return err
		}

		payload, err := relay.Marshal(relay.EventNewMessage, relay.ToMessagePayload(*msg))
		if err != nil {
			return err
		}
		rooms.Broadcast(msg.ChatID, payload)
		return nil
	})
}

package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-marketplace/internal/infrastructure/auth"
	qport "go-marketplace/internal/infrastructure/queue/port"
	"go-marketplace/internal/pkg/chat/application/task"
)

// SendMessageController accepts a message over REST and hands it to the queue;
// the worker persists and fans out. Clients needing the synchronous echo use
// the socket path instead.
type SendMessageController struct {
	queue qport.Client
}

func NewSendMessageController(queue qport.Client) *SendMessageController {
	return &SendMessageController{queue: queue}
}

type sendMessageRequest struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

func (ctl *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctl.queue == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fila indisponível"})
			return
		}

		senderID := auth.UserIDFromContext(c)

		chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
		if err != nil || chatID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId inválido"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido"})
			return
		}
		if (req.Text == nil || *req.Text == "") && (req.Image == nil || *req.Image == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "texto ou imagem é obrigatório"})
			return
		}

		payload, err := json.Marshal(task.SendMessageTaskPayload{
			ChatID:   chatID,
			SenderID: senderID,
			Text:     req.Text,
			Image:    req.Image,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
			return
		}

		taskID, err := ctl.queue.Enqueue(c.Request.Context(), qport.Task{
			Type:    task.SendMessageTaskType,
			Payload: payload,
		}, qport.EnqueueOption{Queue: "chat", MaxRetry: 3, UniqueTTL: time.Minute})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao enfileirar mensagem"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"queued": true, "taskId": taskID})
	}
}

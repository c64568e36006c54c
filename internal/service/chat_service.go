package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/observability"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

const (
	chatCacheTTL          = 30 * time.Minute
	chatSendBufferSize    = 32
	chatNATSSubject       = "karya.chat"
	chatKeepaliveInterval = 30 * time.Second
)

// ErrChatEmptyMessage indicates the message body was empty after sanitisation.
var ErrChatEmptyMessage = errors.New("message body empty after sanitization")

// ChatConnectionOptions wraps metadata extracted during the HTTP upgrade.
type ChatConnectionOptions struct {
	UserID    uint
	Role      string
	ProjectID uint
	Context   context.Context
}

// ChatService manages websocket chat connections and message delivery for
// project rooms.
type ChatService interface {
	ServeConnection(conn *websocket.Conn, opts ChatConnectionOptions)
	History(ctx context.Context, query dto.ChatHistoryQuery) ([]dto.ChatMessageResponse, error)
	Start(ctx context.Context)
}

type chatService struct {
	repo         repository.ChatRepository
	redis        *redis.Client
	nats         *nats.Conn
	validator    *validator.Validate
	logger       zerolog.Logger
	tracer       trace.Tracer
	sanitizer    *bluemonday.Policy
	hub          *chatHub
	nodeID       string
	historyLimit int
}

type chatHub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*chatClient]struct{}
	log   zerolog.Logger
}

// chatConn is the slice of *websocket.Conn the client loops depend on.
type chatConn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type chatClient struct {
	conn      chatConn
	send      chan dto.ChatMessageResponse
	options   ChatConnectionOptions
	service   *chatService
	closed    chan struct{}
	once      sync.Once
	baseCtx   context.Context
	keepalive time.Duration
}

type chatEvent struct {
	Source  string                  `json:"source"`
	Message dto.ChatMessageResponse `json:"message"`
	SentAt  time.Time               `json:"sent_at"`
}

// NewChatService creates a websocket chat service instance. Redis and NATS may
// be nil; caching and cross-node fan-out are then disabled.
func NewChatService(repo repository.ChatRepository, redisClient *redis.Client, natsConn *nats.Conn, validate *validator.Validate, historyLimit int, logger zerolog.Logger) ChatService {
	sanitizer := bluemonday.StrictPolicy()

	hub := &chatHub{
		rooms: make(map[uint]map[*chatClient]struct{}),
		log:   logger.With().Str("component", "chat_hub").Logger(),
	}

	if historyLimit <= 0 {
		historyLimit = 50
	}

	return &chatService{
		repo:         repo,
		redis:        redisClient,
		nats:         natsConn,
		validator:    validate,
		logger:       logger.With().Str("component", "chat_service").Logger(),
		tracer:       otel.Tracer("github.com/ruangkarya/ruangkarya-api/internal/service/chat"),
		sanitizer:    sanitizer,
		hub:          hub,
		nodeID:       uuid.NewString(),
		historyLimit: historyLimit,
	}
}

func (s *chatService) Start(ctx context.Context) {
	if s.nats != nil {
		go s.consumeNATS(ctx)
	}
}

func (s *chatService) ServeConnection(conn *websocket.Conn, opts ChatConnectionOptions) {
	baseCtx := opts.Context
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	client := &chatClient{
		conn:      conn,
		send:      make(chan dto.ChatMessageResponse, chatSendBufferSize),
		options:   opts,
		service:   s,
		closed:    make(chan struct{}),
		baseCtx:   baseCtx,
		keepalive: chatKeepaliveInterval,
	}

	s.hub.register(client)

	if last := s.fetchLastMessage(baseCtx, opts.ProjectID); last != nil {
		select {
		case client.send <- *last:
		default:
		}
	}

	go client.writer()
	client.reader()
}

func (s *chatService) History(ctx context.Context, query dto.ChatHistoryQuery) ([]dto.ChatMessageResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = s.historyLimit
	}

	messages, err := s.repo.History(ctx, query.ProjectID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewChatMessageResponseSlice(messages), nil
}

func (s *chatService) processSend(ctx context.Context, client *chatClient, payload dto.ChatSendRequest) (dto.ChatMessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatMessageResponse{}, err
	}

	clean := strings.TrimSpace(s.sanitizer.Sanitize(payload.Body))
	if clean == "" {
		return dto.ChatMessageResponse{}, ErrChatEmptyMessage
	}

	spanCtx, span := s.tracer.Start(ctx, "chat.broadcast", trace.WithAttributes(
		attribute.Int64("chat.project_id", int64(client.options.ProjectID)),
		attribute.Int64("chat.sender_id", int64(client.options.UserID)),
	))
	defer span.End()

	model := models.ChatMessage{
		MessageID: uuid.NewString(),
		ProjectID: client.options.ProjectID,
		SenderID:  client.options.UserID,
		Body:      clean,
	}

	if err := s.repo.Append(spanCtx, &model); err != nil {
		span.RecordError(err)
		return dto.ChatMessageResponse{}, err
	}

	response := dto.NewChatMessageResponse(model)
	s.cacheLastMessage(spanCtx, response)
	s.hub.broadcast(response.ProjectID, response)
	if err := s.publish(response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish chat event")
	}

	observability.ChatMessages().Inc()

	return response, nil
}

func chatCacheKey(projectID uint) string {
	return fmt.Sprintf("chat:last:%d", projectID)
}

func (s *chatService) cacheLastMessage(ctx context.Context, message dto.ChatMessageResponse) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal chat message for cache")
		return
	}

	if err := s.redis.Set(ctx, chatCacheKey(message.ProjectID), payload, chatCacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache chat message")
	}
}

func (s *chatService) fetchLastMessage(ctx context.Context, projectID uint) *dto.ChatMessageResponse {
	if s.redis == nil {
		return nil
	}

	result, err := s.redis.Get(ctx, chatCacheKey(projectID)).Result()
	if err != nil {
		return nil
	}

	var message dto.ChatMessageResponse
	if err := json.Unmarshal([]byte(result), &message); err != nil {
		s.logger.Warn().Err(err).Msg("failed to unmarshal cached chat message")
		return nil
	}

	return &message
}

func (s *chatService) publish(message dto.ChatMessageResponse) error {
	if s.nats == nil {
		return nil
	}

	event := chatEvent{
		Source:  s.nodeID,
		Message: message,
		SentAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.nats.Publish(chatNATSSubject, payload)
}

func (s *chatService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(chatNATSSubject, "karya-chat", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats chat subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain chat nats subscription")
		}
	}()
}

func (s *chatService) handleEvent(data []byte) {
	var event chatEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid chat event")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	s.hub.broadcast(event.Message.ProjectID, event.Message)
}

func (h *chatHub) register(client *chatClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := client.options.ProjectID
	if _, exists := h.rooms[room]; !exists {
		h.rooms[room] = make(map[*chatClient]struct{})
	}
	h.rooms[room][client] = struct{}{}
	h.log.Debug().Uint("project_id", room).Uint("user_id", client.options.UserID).Msg("chat client connected")
}

func (h *chatHub) unregister(client *chatClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := client.options.ProjectID
	if clients, ok := h.rooms[room]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	h.log.Debug().Uint("project_id", room).Uint("user_id", client.options.UserID).Msg("chat client disconnected")
}

func (h *chatHub) broadcast(projectID uint, message dto.ChatMessageResponse) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[projectID] {
		select {
		case client.send <- message:
		default:
			h.log.Warn().Uint("project_id", projectID).Uint("user_id", client.options.UserID).Msg("dropping chat message for slow client")
		}
	}
}

func (c *chatClient) reader() {
	defer c.close()

	for {
		var payload dto.ChatSendRequest
		if err := c.conn.ReadJSON(&payload); err != nil {
			c.service.logger.Debug().Err(err).Msg("chat read loop ended")
			return
		}

		if _, err := c.service.processSend(c.baseCtx, c, payload); err != nil {
			c.service.logger.Warn().Err(err).Msg("failed to process chat message")
		}
	}
}

func (c *chatClient) writer() {
	interval := c.keepalive
	if interval <= 0 {
		interval = chatKeepaliveInterval
	}
	keepalive := time.NewTicker(interval)
	defer keepalive.Stop()
	defer c.close()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.service.logger.Debug().Err(err).Msg("chat write loop terminated")
				return
			}
		case <-keepalive.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *chatClient) close() {
	c.once.Do(func() {
		close(c.closed)
		c.service.hub.unregister(c)
		_ = c.conn.Close()
	})
}

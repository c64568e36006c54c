package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

type fakeChatRepo struct {
	messages []models.ChatMessage
}

func (f *fakeChatRepo) History(ctx context.Context, projectID uint, limit int) ([]models.ChatMessage, error) {
	out := make([]models.ChatMessage, 0)
	for _, message := range f.messages {
		if message.ProjectID == projectID {
			out = append(out, message)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeChatRepo) Append(ctx context.Context, message *models.ChatMessage) error {
	message.ID = uint(len(f.messages) + 1)
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)
	return nil
}

func newChatServiceForTest(repo *fakeChatRepo) *chatService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewChatService(repo, nil, nil, validate, 50, testLogger()).(*chatService)
}

func newChatTestClient(svc *chatService, projectID, userID uint) *chatClient {
	return &chatClient{
		send:    make(chan dto.ChatMessageResponse, chatSendBufferSize),
		options: ChatConnectionOptions{UserID: userID, Role: models.RoleStudent, ProjectID: projectID},
		service: svc,
		closed:  make(chan struct{}),
		baseCtx: context.Background(),
	}
}

func TestChatServiceProcessSendSanitizesMarkup(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := newChatServiceForTest(repo)
	client := newChatTestClient(svc, 7, 11)

	response, err := svc.processSend(context.Background(), client, dto.ChatSendRequest{
		Body: `hello <script>alert("x")</script>team`,
	})
	require.NoError(t, err)
	require.Equal(t, "hello team", response.Body)
	require.NotEmpty(t, response.MessageID)
	require.Equal(t, uint(7), response.ProjectID)
	require.Equal(t, uint(11), response.SenderID)
	require.Len(t, repo.messages, 1)
	require.Equal(t, "hello team", repo.messages[0].Body)
}

func TestChatServiceProcessSendRejectsEmptyAfterSanitize(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := newChatServiceForTest(repo)
	client := newChatTestClient(svc, 7, 11)

	_, err := svc.processSend(context.Background(), client, dto.ChatSendRequest{
		Body: `<img src="x">`,
	})
	require.ErrorIs(t, err, ErrChatEmptyMessage)
	require.Empty(t, repo.messages)
}

func TestChatServiceProcessSendBroadcastsToRoom(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := newChatServiceForTest(repo)

	sender := newChatTestClient(svc, 7, 11)
	listener := newChatTestClient(svc, 7, 12)
	outsider := newChatTestClient(svc, 8, 13)
	svc.hub.register(sender)
	svc.hub.register(listener)
	svc.hub.register(outsider)

	response, err := svc.processSend(context.Background(), sender, dto.ChatSendRequest{Body: "standup at 9"})
	require.NoError(t, err)

	received := <-listener.send
	require.Equal(t, response.MessageID, received.MessageID)
	require.Empty(t, outsider.send)
}

func TestChatServiceHistoryDefaultsLimit(t *testing.T) {
	repo := &fakeChatRepo{}
	for i := 0; i < 60; i++ {
		require.NoError(t, repo.Append(context.Background(), &models.ChatMessage{ProjectID: 7, SenderID: 11, Body: "msg"}))
	}
	svc := newChatServiceForTest(repo)

	messages, err := svc.History(context.Background(), dto.ChatHistoryQuery{ProjectID: 7})
	require.NoError(t, err)
	require.Len(t, messages, 50)
}

func TestChatServiceHistoryValidatesQuery(t *testing.T) {
	svc := newChatServiceForTest(&fakeChatRepo{})

	_, err := svc.History(context.Background(), dto.ChatHistoryQuery{})
	require.Error(t, err)
}

type stubChatConn struct {
	wrote chan dto.ChatMessageResponse
	pings chan struct{}

	mu     sync.Mutex
	closed bool
}

func newStubChatConn() *stubChatConn {
	return &stubChatConn{
		wrote: make(chan dto.ChatMessageResponse, 8),
		pings: make(chan struct{}, 8),
	}
}

func (s *stubChatConn) ReadJSON(v interface{}) error {
	return errors.New("closed")
}

func (s *stubChatConn) WriteJSON(v interface{}) error {
	message, ok := v.(dto.ChatMessageResponse)
	if !ok {
		return errors.New("unexpected payload type")
	}
	s.wrote <- message
	return nil
}

func (s *stubChatConn) WriteMessage(messageType int, data []byte) error {
	s.pings <- struct{}{}
	return nil
}

func (s *stubChatConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubChatConn) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func TestChatClientWriterDeliversMessagesAndKeepalives(t *testing.T) {
	svc := newChatServiceForTest(&fakeChatRepo{})
	client := newChatTestClient(svc, 7, 11)
	conn := newStubChatConn()
	client.conn = conn
	client.keepalive = 5 * time.Millisecond

	go client.writer()

	client.send <- dto.ChatMessageResponse{ProjectID: 7, Body: "standup at 9"}
	select {
	case written := <-conn.wrote:
		require.Equal(t, "standup at 9", written.Body)
	case <-time.After(time.Second):
		t.Fatal("message was not written to the connection")
	}

	select {
	case <-conn.pings:
	case <-time.After(time.Second):
		t.Fatal("keepalive ping was not sent")
	}

	close(client.send)
	require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)
}

func TestChatServiceHandleEventSkipsOwnNode(t *testing.T) {
	svc := newChatServiceForTest(&fakeChatRepo{})
	listener := newChatTestClient(svc, 7, 12)
	svc.hub.register(listener)

	own, err := json.Marshal(chatEvent{Source: svc.nodeID, Message: dto.ChatMessageResponse{ProjectID: 7, Body: "self"}})
	require.NoError(t, err)
	svc.handleEvent(own)
	require.Empty(t, listener.send)

	remote, err := json.Marshal(chatEvent{Source: "another-node", Message: dto.ChatMessageResponse{ProjectID: 7, Body: "remote"}})
	require.NoError(t, err)
	svc.handleEvent(remote)

	received := <-listener.send
	require.Equal(t, "remote", received.Body)
}

package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// StreamClient handles the WebSocket connection to the live fixture feed.
// It is used by the importer to pick up final whistles without polling.
type StreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	streamURL       string
	leagueID        int
	mu              sync.RWMutex
	isConnected     bool
	handlers        []MessageHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	logger          *logrus.Logger
}

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// MessageHandler is called for every message received from the stream
type MessageHandler func(msg LiveFixtureMessage) error

// LiveFixtureMessage is one event from the live feed.
type LiveFixtureMessage struct {
	Op        string `json:"op"`
	FixtureID int64  `json:"fixture_id"`
	Status    string `json:"status"`
	Elapsed   int    `json:"elapsed"`
	GoalsHome *int   `json:"goals_home"`
	GoalsAway *int   `json:"goals_away"`
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// NewStreamClient creates a new live feed client
func NewStreamClient(streamURL, apiKey string, leagueID int, logger *logrus.Logger) *StreamClient {
	if logger == nil {
		logger = logrus.New()
	}

	return &StreamClient{
		apiKey:          apiKey,
		streamURL:       streamURL,
		leagueID:        leagueID,
		handlers:        make([]MessageHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop.
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.WithField("url", s.streamURL).Info("Connecting to live fixture stream")

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	go s.readMessages()

	return nil
}

// Subscribe authenticates and subscribes to the league's live fixtures.
func (s *StreamClient) Subscribe(ctx context.Context) error {
	subMsg := map[string]interface{}{
		"op":        "subscribe",
		"api_key":   s.apiKey,
		"league_id": s.leagueID,
		"heartbeat": true,
	}

	s.logger.WithField("league_id", s.leagueID).Info("Subscribing to league fixtures")
	return s.sendMessage(subMsg)
}

// AddHandler registers a message handler
func (s *StreamClient) AddHandler(handler MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the WebSocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var raw json.RawMessage
		if err := s.conn.ReadJSON(&raw); err != nil {
			s.logger.WithError(err).Warn("Stream read failed")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		handlers := s.handlers
		s.mu.Unlock()

		var msg LiveFixtureMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.WithError(err).Debug("Skipping malformed stream message")
			continue
		}
		if msg.Op == "heartbeat" {
			continue
		}

		for _, handler := range handlers {
			if err := handler(msg); err != nil {
				s.logger.WithError(err).WithField("fixture_id", msg.FixtureID).Error("Stream handler failed")
			}
		}
	}
}

// sendMessage sends a JSON message to the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isConnected || s.conn == nil {
		return fmt.Errorf("not connected")
	}
	return s.conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the WebSocket connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isConnected = false
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

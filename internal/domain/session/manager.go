package session

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/shared/types"
	"github.com/promptdeck/promptdeck/internal/storage"
)

// currentKey is the single session slot.
const currentKey = "session/current"

// Manager reads and writes the session record.
type Manager struct {
	kv     storage.Store
	logger *logging.Logger
}

// NewManager creates a session manager over kv.
func NewManager(kv storage.Store, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{kv: kv, logger: logger}
}

// Save overwrites the session slot with snap.
func (m *Manager) Save(snap types.SessionSnapshot) error {
	payload, err := sonic.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return fmt.Errorf("compress session: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("compress session: %w", err)
	}

	if err := m.kv.Set(currentKey, buf.Bytes()); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the session slot. A missing, unreadable, or corrupt record
// yields (nil, nil): the caller starts empty instead of failing startup.
func (m *Manager) Load() (*types.SessionSnapshot, error) {
	raw, ok, err := m.kv.Get(currentKey)
	if err != nil {
		m.logger.Warn("Session read failed, starting empty", zap.Error(err))
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		m.logger.Warn("Session record corrupt, starting empty", zap.Error(err))
		return nil, nil
	}
	payload, err := io.ReadAll(gz)
	if cerr := gz.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		m.logger.Warn("Session record corrupt, starting empty", zap.Error(err))
		return nil, nil
	}

	var snap types.SessionSnapshot
	if err := sonic.Unmarshal(payload, &snap); err != nil {
		m.logger.Warn("Session record undecodable, starting empty", zap.Error(err))
		return nil, nil
	}
	return &snap, nil
}

// Clear removes the session slot.
func (m *Manager) Clear() error {
	if err := m.kv.Remove(currentKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

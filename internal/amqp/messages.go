package amqp

import (
	"encoding/json"
	"time"
)

// TransactionRecordedMessage announces a newly stored transaction. It carries
// only the ID; consumers read the full record from the store.
type TransactionRecordedMessage struct {
	ID        int64     `json:"id"`
	BatchID   string    `json:"batch_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage creates a message stamped with the current time
func NewTransactionRecordedMessage(id int64, batchID string) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        id,
		BatchID:   batchID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON creates a message from JSON bytes
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

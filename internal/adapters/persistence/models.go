package persistence

import (
	"time"
)

// SnapshotModel represents the snapshots table. Each row is one named save
// slot holding an lz4-compressed JSON document of the whole game state.
type SnapshotModel struct {
	Slot          string    `gorm:"column:slot;primaryKey;not null"`
	FormatVersion int       `gorm:"column:format_version;not null"`
	Payload       []byte    `gorm:"column:payload;not null"`
	Checksum      string    `gorm:"column:checksum;not null"` // hex blake3 of the uncompressed document
	SizeBytes     int       `gorm:"column:size_bytes;not null;default:0"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}

func (SnapshotModel) TableName() string {
	return "snapshots"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Timestamp         time.Time `gorm:"column:timestamp;not null;index:idx_transactions_timestamp"`
	TransactionType   string    `gorm:"column:transaction_type;not null;index:idx_transactions_type"`
	Category          string    `gorm:"column:category;not null;index:idx_transactions_category"`
	Unit              string    `gorm:"column:unit;not null;default:LOC"`
	Amount            float64   `gorm:"column:amount;not null"`
	BalanceBefore     float64   `gorm:"column:balance_before;not null"`
	BalanceAfter      float64   `gorm:"column:balance_after;not null"`
	Description       string    `gorm:"column:description;type:text"`
	Metadata          string    `gorm:"column:metadata;type:text"` // JSON as text
	RelatedEntityType string    `gorm:"column:related_entity_type"`
	RelatedEntityID   string    `gorm:"column:related_entity_id"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

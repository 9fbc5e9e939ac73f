package clickhouse

import (
	"context"
	"fmt"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// ActivityStore implements storage.ActivityStore using ClickHouse.
// The table is append-only; duplicate signatures are tolerated because the
// pipeline only archives each signature once per process and the archive is
// analytical, not authoritative.
type ActivityStore struct {
	conn *Conn
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(conn *Conn) *ActivityStore {
	return &ActivityStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ActivityStore = (*ActivityStore)(nil)

// Insert appends one classified activity.
func (s *ActivityStore) Insert(ctx context.Context, a *domain.Activity) error {
	if a == nil || a.Signature == "" {
		return storage.ErrInvalidInput
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO wallet_activities (
			signature, slot, block_time, wallet, activity_type,
			source_mint, source_amount, dest_mint, dest_amount,
			program, fee
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	var sourceMint, destMint string
	var sourceAmount, destAmount float64
	if a.SourceToken != nil {
		sourceMint = a.SourceToken.Mint
		sourceAmount = a.SourceToken.Amount
	}
	if a.DestToken != nil {
		destMint = a.DestToken.Mint
		destAmount = a.DestToken.Amount
	}

	err = batch.Append(
		a.Signature, uint64(a.Slot), uint64(a.Timestamp), a.Wallet, string(a.Type),
		sourceMint, sourceAmount, destMint, destAmount,
		a.Program, a.Fee,
	)
	if err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByWalletTimeRange retrieves activities for a wallet within [start, end)
// block time, ordered by block time then signature.
func (s *ActivityStore) GetByWalletTimeRange(ctx context.Context, wallet string, start, end int64) ([]*domain.Activity, error) {
	query := `
		SELECT signature, slot, block_time, wallet, activity_type,
		       source_mint, source_amount, dest_mint, dest_amount,
		       program, fee
		FROM wallet_activities
		WHERE wallet = ? AND block_time >= ? AND block_time < ?
		ORDER BY block_time ASC, signature ASC
	`

	rows, err := s.conn.Query(ctx, query, wallet, uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("get activities by wallet/time range: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var (
			a                        domain.Activity
			slot, blockTime          uint64
			activityType             string
			sourceMint, destMint     string
			sourceAmount, destAmount float64
		)

		err := rows.Scan(
			&a.Signature, &slot, &blockTime, &a.Wallet, &activityType,
			&sourceMint, &sourceAmount, &destMint, &destAmount,
			&a.Program, &a.Fee,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}

		a.Slot = int64(slot)
		a.Timestamp = int64(blockTime)
		a.Type = domain.ActivityType(activityType)
		if sourceMint != "" {
			a.SourceToken = &domain.TokenBalanceChange{Mint: sourceMint, Amount: sourceAmount}
		}
		if destMint != "" {
			a.DestToken = &domain.TokenBalanceChange{Mint: destMint, Amount: destAmount}
		}

		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}

	return activities, nil
}

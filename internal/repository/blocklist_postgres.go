package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"agendo/internal/domain"
)

type BlockListRepo struct {
	db DB
}

func NewBlockListRepository(db DB) BlockListRepository {
	return &BlockListRepo{db: db}
}

func (r *BlockListRepo) Block(ctx context.Context, dto domain.BlockNumberDTO) (*domain.BlockedNumber, error) {
	blocked := domain.BlockedNumber{
		ID:          uuid.New().String(),
		PhoneNumber: dto.PhoneNumber,
		BlockReason: dto.BlockReason,
		BlockSource: dto.BlockSource,
		BlockedBy:   dto.BlockedBy,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO blocked_numbers (id, phone_number, block_reason, block_source, blocked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (phone_number) DO NOTHING
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		blocked.ID,
		blocked.PhoneNumber,
		blocked.BlockReason,
		blocked.BlockSource,
		blocked.BlockedBy,
		blocked.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao bloquear número: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("número já bloqueado")
	}

	return &blocked, nil
}

func (r *BlockListRepo) Unblock(ctx context.Context, phoneNumber string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blocked_numbers WHERE phone_number = $1`, phoneNumber)
	if err != nil {
		return fmt.Errorf("erro ao desbloquear número: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("número não está bloqueado")
	}

	return nil
}

func (r *BlockListRepo) GetByPhone(ctx context.Context, phoneNumber string) (*domain.BlockedNumber, error) {
	query := `
		SELECT id, phone_number, COALESCE(block_reason, ''), block_source, blocked_by, created_at
		FROM blocked_numbers
		WHERE phone_number = $1
	`

	var blocked domain.BlockedNumber
	err := r.db.QueryRow(ctx, query, phoneNumber).Scan(
		&blocked.ID,
		&blocked.PhoneNumber,
		&blocked.BlockReason,
		&blocked.BlockSource,
		&blocked.BlockedBy,
		&blocked.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar número bloqueado: %w", err)
	}

	return &blocked, nil
}

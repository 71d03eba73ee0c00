package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendo/internal/domain"
)

func newBlockListMock(t *testing.T) (pgxmock.PgxPoolIface, BlockListRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewBlockListRepository(mock)
}

func TestBlockListBlock(t *testing.T) {
	mock, repo := newBlockListMock(t)

	mock.ExpectExec("INSERT INTO blocked_numbers").
		WithArgs(pgxmock.AnyArg(), "+5511987654321", "spam", domain.BlockSourceManual, "user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	blocked, err := repo.Block(context.Background(), domain.BlockNumberDTO{
		PhoneNumber: "+5511987654321",
		BlockReason: "spam",
		BlockSource: domain.BlockSourceManual,
		BlockedBy:   "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "+5511987654321", blocked.PhoneNumber)
	assert.NotEmpty(t, blocked.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockListBlockAlreadyBlocked(t *testing.T) {
	mock, repo := newBlockListMock(t)

	// ON CONFLICT DO NOTHING: zero linhas afetadas significa duplicado.
	mock.ExpectExec("INSERT INTO blocked_numbers").
		WithArgs(pgxmock.AnyArg(), "+5511987654321", "", domain.BlockSourceManual, "user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	_, err := repo.Block(context.Background(), domain.BlockNumberDTO{
		PhoneNumber: "+5511987654321",
		BlockSource: domain.BlockSourceManual,
		BlockedBy:   "user-1",
	})

	assert.EqualError(t, err, "número já bloqueado")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockListUnblock(t *testing.T) {
	mock, repo := newBlockListMock(t)

	mock.ExpectExec("DELETE FROM blocked_numbers").
		WithArgs("+5511987654321").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Unblock(context.Background(), "+5511987654321"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockListUnblockNotBlocked(t *testing.T) {
	mock, repo := newBlockListMock(t)

	mock.ExpectExec("DELETE FROM blocked_numbers").
		WithArgs("+5511987654321").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Unblock(context.Background(), "+5511987654321")
	assert.EqualError(t, err, "número não está bloqueado")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockListGetByPhone(t *testing.T) {
	mock, repo := newBlockListMock(t)
	createdAt := time.Now()

	rows := pgxmock.NewRows([]string{"id", "phone_number", "block_reason", "block_source", "blocked_by", "created_at"}).
		AddRow("blk-1", "+5511987654321", "spam", domain.BlockSourceManual, "user-1", createdAt)

	mock.ExpectQuery("SELECT id, phone_number").
		WithArgs("+5511987654321").
		WillReturnRows(rows)

	blocked, err := repo.GetByPhone(context.Background(), "+5511987654321")

	require.NoError(t, err)
	require.NotNil(t, blocked)
	assert.Equal(t, "blk-1", blocked.ID)
	assert.Equal(t, domain.BlockSourceManual, blocked.BlockSource)
	assert.Equal(t, "spam", blocked.BlockReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockListGetByPhoneNotFound(t *testing.T) {
	mock, repo := newBlockListMock(t)

	mock.ExpectQuery("SELECT id, phone_number").
		WithArgs("+5511987654321").
		WillReturnError(pgx.ErrNoRows)

	blocked, err := repo.GetByPhone(context.Background(), "+5511987654321")

	require.NoError(t, err)
	assert.Nil(t, blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

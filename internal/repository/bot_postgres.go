package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"agendo/internal/domain"
)

type BotRepo struct {
	db DB
}

func NewBotRepository(db DB) BotRepository {
	return &BotRepo{db: db}
}

func (r *BotRepo) GetByCompanyID(ctx context.Context, companyID string) (*domain.BotParameters, error) {
	query := `
		SELECT company_id, lembrete_nodia, lembrete_anterior, permite_agendar, permite_remarcar,
		       permite_cancelar, habilitar_fluxo, COALESCE(link_relatorio, ''), COALESCE(endereco_atendimento, ''),
		       COALESCE(foto_company, ''), COALESCE(orientacoes, ''), COALESCE(bot_link, ''), restricao, updated_at
		FROM bot_parameters
		WHERE company_id = $1
	`

	var params domain.BotParameters
	err := r.db.QueryRow(ctx, query, companyID).Scan(
		&params.CompanyID,
		&params.LembreteNoDia,
		&params.LembreteAnterior,
		&params.PermiteAgendar,
		&params.PermiteRemarcar,
		&params.PermiteCancelar,
		&params.HabilitarFluxo,
		&params.LinkRelatorio,
		&params.EnderecoAtendimento,
		&params.FotoCompany,
		&params.Orientacoes,
		&params.BotLink,
		&params.Restricao,
		&params.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar parâmetros do bot: %w", err)
	}

	return &params, nil
}

// Upsert cria a linha com os padrões na primeira gravação e depois só altera
// os campos enviados.
func (r *BotRepo) Upsert(ctx context.Context, companyID string, dto domain.UpdateBotParametersDTO) (*domain.BotParameters, error) {
	insert := `
		INSERT INTO bot_parameters (company_id, updated_at)
		VALUES ($1, $2)
		ON CONFLICT (company_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, companyID, time.Now()); err != nil {
		return nil, fmt.Errorf("erro ao criar parâmetros do bot: %w", err)
	}

	query := `UPDATE bot_parameters SET updated_at = $1`
	args := []any{time.Now()}
	argPos := 2

	set := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argPos)
		args = append(args, value)
		argPos++
	}

	if dto.LembreteNoDia != nil {
		set("lembrete_nodia", *dto.LembreteNoDia)
	}
	if dto.LembreteAnterior != nil {
		set("lembrete_anterior", *dto.LembreteAnterior)
	}
	if dto.PermiteAgendar != nil {
		set("permite_agendar", *dto.PermiteAgendar)
	}
	if dto.PermiteRemarcar != nil {
		set("permite_remarcar", *dto.PermiteRemarcar)
	}
	if dto.PermiteCancelar != nil {
		set("permite_cancelar", *dto.PermiteCancelar)
	}
	if dto.HabilitarFluxo != nil {
		set("habilitar_fluxo", *dto.HabilitarFluxo)
	}
	if dto.LinkRelatorio != nil {
		set("link_relatorio", *dto.LinkRelatorio)
	}
	if dto.EnderecoAtendimento != nil {
		set("endereco_atendimento", *dto.EnderecoAtendimento)
	}
	if dto.Orientacoes != nil {
		set("orientacoes", *dto.Orientacoes)
	}
	if dto.BotLink != nil {
		set("bot_link", *dto.BotLink)
	}
	if dto.Restricao != nil {
		set("restricao", *dto.Restricao)
	}

	query += fmt.Sprintf(" WHERE company_id = $%d", argPos)
	args = append(args, companyID)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao atualizar parâmetros do bot: %w", err)
	}

	return r.GetByCompanyID(ctx, companyID)
}

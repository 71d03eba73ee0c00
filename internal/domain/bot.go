package domain

import (
	"time"
)

// BotParameters configura o chatbot de agendamento de uma empresa. Os nomes
// JSON seguem o contrato do widget do painel.
type BotParameters struct {
	CompanyID           string    `json:"companyId"`
	LembreteNoDia       bool      `json:"lembrete_nodia"`
	LembreteAnterior    bool      `json:"lembrete_anterior"`
	PermiteAgendar      bool      `json:"permite_agendar"`
	PermiteRemarcar     bool      `json:"permite_remarcar"`
	PermiteCancelar     bool      `json:"permite_cancelar"`
	HabilitarFluxo      bool      `json:"habilitar_fluxo"`
	LinkRelatorio       string    `json:"link_relatorio"`
	EnderecoAtendimento string    `json:"endereco_atendimento"`
	FotoCompany         string    `json:"foto_company"`
	Orientacoes         string    `json:"orientacoes"`
	BotLink             string    `json:"bot_link"`
	// Restricao é a antecedência mínima, em horas, para agendar via bot.
	Restricao int `json:"restricao"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type UpdateBotParametersDTO struct {
	LembreteNoDia       *bool   `json:"lembrete_nodia"`
	LembreteAnterior    *bool   `json:"lembrete_anterior"`
	PermiteAgendar      *bool   `json:"permite_agendar"`
	PermiteRemarcar     *bool   `json:"permite_remarcar"`
	PermiteCancelar     *bool   `json:"permite_cancelar"`
	HabilitarFluxo      *bool   `json:"habilitar_fluxo"`
	LinkRelatorio       *string `json:"link_relatorio"`
	EnderecoAtendimento *string `json:"endereco_atendimento"`
	Orientacoes         *string `json:"orientacoes"`
	BotLink             *string `json:"bot_link"`
	Restricao           *int    `json:"restricao" binding:"omitempty,min=0,max=168"`
}

package chat

import (
	"github.com/clauseguard/clauseguard/pkg/query"
	"github.com/clauseguard/clauseguard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "chat_messages", "m").
	Project("id", "ID").
	Project("contract_id", "ContractID").
	Project("role", "Role").
	Project("content", "Content").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

func scanMessage(s repository.Scanner) (Message, error) {
	var m Message
	err := s.Scan(
		&m.ID,
		&m.ContractID,
		&m.Role,
		&m.Content,
		&m.CreatedAt,
	)
	return m, err
}

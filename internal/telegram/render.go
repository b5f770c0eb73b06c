package telegram

import (
	"fmt"
	"strings"

	"github.com/nikmy/adminui/internal/members"
)

func renderRecord(r members.Record) string {
	return fmt.Sprintf("%s | %s | %s | %s", r.ID, r.Name, r.Email, r.Role)
}

func renderRows(rows []members.Record, maxRows int) string {
	if len(rows) == 0 {
		return "No members found"
	}

	var sb strings.Builder
	for i, r := range rows {
		if i == maxRows {
			fmt.Fprintf(&sb, "...and %d more", len(rows)-maxRows)
			break
		}
		sb.WriteString(renderRecord(r))
		sb.WriteString("\n")
	}
	return sb.String()
}

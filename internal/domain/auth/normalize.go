package auth

import "strings"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePseudo(pseudo string) string {
	return strings.TrimSpace(pseudo)
}

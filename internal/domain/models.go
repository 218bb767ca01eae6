package domain

import "strings"

// Domain contains the wire payloads exchanged with the shopping-list backend.
// JSON field names follow the backend contract and are Spanish.

// ShoppingListRequest is the body POSTed to /generar-lista-compra/.
type ShoppingListRequest struct {
	RecipeNames          []string `json:"nombres_recetas"`
	AvailableIngredients []string `json:"ingredientes_disponibles"`
}

// ShoppingListResponse is the body returned on success.
type ShoppingListResponse struct {
	ShoppingList string `json:"lista_compra"`
}

// SplitList turns a comma-separated user input into an ordered sequence of
// trimmed, non-empty tokens. An input with no surviving tokens yields an
// empty (non-nil) slice.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

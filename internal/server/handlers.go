package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despensa-hq/despensa/internal/domain"
	"github.com/despensa-hq/despensa/internal/storage"
)

// generationFailedText is returned in-band when the model cannot be reached,
// mirroring the backend contract: generation trouble is reported inside
// lista_compra, not as a transport error.
const generationFailedText = "Error: No se pudo generar la lista de la compra. Verifica la configuración de la API."

// handleWelcome answers the root probe.
func (s *Server) handleWelcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mensaje": "Bienvenido a la API de Asistente Personal Inteligente",
	})
}

// handleGenerate receives recipes plus owned ingredients and answers with a
// generated shopping list. Identical payloads within the cache TTL are
// answered from the store without touching the model.
func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req domain.ShoppingListRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}
	if len(req.RecipeNames) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "nombres_recetas must not be empty",
		})
	}

	key := storage.CacheKey(req)
	if text, ok, err := s.store.GetList(key); err != nil {
		s.log.WarnObj("cache lookup failed", "error", err)
	} else if ok {
		s.log.DebugObj("cache hit", "key", key)
		return c.JSON(domain.ShoppingListResponse{ShoppingList: text})
	}

	text, err := s.generator.GenerateContent(c.Context(), s.tpl.Render(req.RecipeNames, req.AvailableIngredients))
	if err != nil {
		s.log.ErrorObj("shopping list generation failed", "error", err)
		return c.JSON(domain.ShoppingListResponse{ShoppingList: generationFailedText})
	}

	if err := s.store.PutList(key, text); err != nil {
		s.log.WarnObj("cache write failed", "error", err)
	}

	return c.JSON(domain.ShoppingListResponse{ShoppingList: text})
}

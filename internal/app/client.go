package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/despensa-hq/despensa/internal/config"
	"github.com/despensa-hq/despensa/internal/logger"
	"github.com/despensa-hq/despensa/pkg/assistant"
	"github.com/despensa-hq/despensa/pkg/httpclient"
)

// NewController builds the request controller from config.
func NewController(cfg *config.Config, log logger.Logger) (*assistant.Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	client := httpclient.NewRestyClient(cfg.RequestTimeout)
	return assistant.NewController(cfg.BackendURL, client, log), nil
}

// GenerateOnce runs a single request to completion and returns the shopping
// list text, or an error carrying the failure diagnostic.
func GenerateOnce(ctx context.Context, cfg *config.Config, log logger.Logger, recipesText, ingredientsText string) (string, error) {
	ctrl, err := NewController(cfg, log)
	if err != nil {
		return "", err
	}
	defer ctrl.Close()

	states, cancel := ctrl.Subscribe()
	defer cancel()

	ctrl.GenerateShoppingList(recipesText, ingredientsText)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case s, ok := <-states:
			if !ok {
				return "", errors.New("controller closed before the request settled")
			}
			switch st := s.(type) {
			case assistant.Success:
				return st.Text, nil
			case assistant.Failure:
				return "", errors.New(st.Message)
			case assistant.Idle, assistant.Loading:
				// Not settled yet.
			}
		}
	}
}

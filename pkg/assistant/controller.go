package assistant

import (
	"context"
	"strings"
	"sync"

	"github.com/despensa-hq/despensa/internal/domain"
	"github.com/despensa-hq/despensa/pkg/httpclient"
)

// GeneratePath is the backend endpoint that turns recipes into a shopping list.
const GeneratePath = "/generar-lista-compra/"

// fallbackErrorMessage is surfaced when a failure carries no message of its own.
const fallbackErrorMessage = "unknown error"

// Controller mediates between raw user text and the backend call, and owns
// the UiState. It is the single writer of the state; readers observe it via
// State or Subscribe.
//
// Overlapping GenerateShoppingList calls each run to completion and the
// last one to settle wins. There is no generation guard; callers that need
// de-duplication must serialize invocations themselves.
type Controller struct {
	client   httpclient.Client
	endpoint string
	log      Logger

	mu      sync.Mutex
	state   UiState
	subs    map[int]chan UiState
	nextSub int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewController builds a controller that POSTs against baseURL using client.
// The controller starts in Idle and owns the client from here on; Close
// releases it.
func NewController(baseURL string, client httpclient.Client, log Logger) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		client:   client,
		endpoint: strings.TrimRight(baseURL, "/") + GeneratePath,
		log:      ensureLogger(log),
		state:    Idle{},
		subs:     make(map[int]chan UiState),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns the current UiState.
func (c *Controller) State() UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers an observer of state transitions. The returned channel
// holds at most the latest state; slow observers see values conflated, never
// blocked on. The current state is delivered immediately. The cancel func
// unregisters the observer and closes the channel.
func (c *Controller) Subscribe() (<-chan UiState, func()) {
	ch := make(chan UiState, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// GenerateShoppingList normalizes both inputs, sets the state to Loading, and
// issues one asynchronous backend call. The Loading write is synchronous: a
// caller observing State right after this returns sees Loading regardless of
// network latency. The terminal Success/Failure write happens when the call
// settles.
func (c *Controller) GenerateShoppingList(recipesText, ingredientsText string) {
	c.setState(Loading{})

	req := domain.ShoppingListRequest{
		RecipeNames:          domain.SplitList(recipesText),
		AvailableIngredients: domain.SplitList(ingredientsText),
	}
	c.log.DebugObj("shopping list requested", "request", req)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		var resp domain.ShoppingListResponse
		if err := c.client.PostJSON(c.ctx, c.endpoint, req, &resp); err != nil {
			c.log.WarnObj("shopping list request failed", "error", err)
			c.setState(Failure{Message: failureMessage(err)})
			return
		}
		c.setState(Success{Text: resp.ShoppingList})
	}()
}

// Close cancels the controller's lifetime scope, waits for any in-flight
// call to settle, and then releases the HTTP client. Idempotent.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
		c.closeErr = c.client.Close()

		c.mu.Lock()
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
		c.mu.Unlock()
	})
	return c.closeErr
}

// setState overwrites the state and fans the new value out to observers.
func (c *Controller) setState(s UiState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = s
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			// Conflate: replace the undelivered value with the latest.
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func failureMessage(err error) string {
	if err == nil {
		return fallbackErrorMessage
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return fallbackErrorMessage
	}
	return msg
}

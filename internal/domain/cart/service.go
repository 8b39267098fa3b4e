// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	"github.com/your-org/storefront-client/internal/pkg/metrics"
)

// ErrItemNotFound is returned by the facade when a line item id is unknown
var ErrItemNotFound = errors.New("cart item not found")

// reconcileTimeout bounds a reconcile started by a token change notification
const reconcileTimeout = 10 * time.Second

// Store holds the active cart of one session context and keeps it in sync
// with the cart partition of the current owner.
type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	tokens  *session.TokenStore
	logger  *logrus.Logger
	metrics *metrics.Metrics

	owner string
	items []LineItem

	// loaded is set once a load or reconcile of the current owner's
	// partition succeeded. Until then an empty cart never overwrites a
	// non-empty stored one.
	loaded bool
	// reconciling suppresses write-through while Reconcile replaces items
	reconciling bool

	unsubscribe func()
	newID       func() string
}

// follower reconciles in the background after token changes made by other
// session contexts
type follower struct {
	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewStore creates a cart store for the guest owner. Call Start to load the
// persisted cart and follow token changes.
func NewStore(store kv.Store, tokens *session.TokenStore, logger *logrus.Logger, m *metrics.Metrics) *Store {
	return &Store{
		kv:      store,
		tokens:  tokens,
		logger:  logger,
		metrics: m,
		owner:   session.GuestOwner,
		newID:   func() string { return uuid.New().String() },
	}
}

// Start reconciles once and then again on every token set change. A change
// made through this process's TokenStore is reconciled before Save or
// Delete returns; a change from another session context is picked up by a
// background worker. Start must be called at most once.
func (s *Store) Start(ctx context.Context) {
	s.Reconcile(ctx)

	f := &follower{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.follow(f)

	local := s.tokens.OnLocalChange(s.reconcileDetached)
	remote := s.tokens.OnRemoteChange(func() {
		// one pending wake-up covers any number of changes
		select {
		case f.wake <- struct{}{}:
		default:
		}
	})

	s.mu.Lock()
	s.unsubscribe = func() {
		local()
		remote()
		close(f.stop)
		<-f.done
	}
	s.mu.Unlock()
}

func (s *Store) follow(f *follower) {
	defer close(f.done)

	for {
		select {
		case <-f.stop:
			return
		case <-f.wake:
			s.reconcileDetached()
		}
	}
}

func (s *Store) reconcileDetached() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()
	s.Reconcile(ctx)
}

// Close stops following token changes and waits for a running background
// reconcile to finish
func (s *Store) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// AddItem adds quantity units of product/variant, merging into an existing
// line with the same product and variant. A quantity below 1 adds one unit.
func (s *Store) AddItem(ctx context.Context, p product.Product, variant *product.Variant, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(p, variant)
	for i := range s.items {
		if s.items[i].key() == key {
			s.items[i].Quantity += quantity
			item := s.items[i]
			s.persistLocked(ctx)
			return item
		}
	}

	item := LineItem{
		ID:       s.newID(),
		Product:  p,
		Variant:  variant,
		Quantity: quantity,
	}
	s.items = append(s.items, item)
	s.persistLocked(ctx)

	return item
}

// UpdateQuantity sets the quantity of a line; a quantity below 1 removes it.
// Unknown ids leave the cart unchanged.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) bool {
	if quantity < 1 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(itemID)
	if i < 0 {
		return false
	}

	s.items[i].Quantity = quantity
	s.persistLocked(ctx)
	return true
}

// Deduct takes quantity units off a line and drops the line once nothing is
// left. Units added since the caller read the line stay in the cart.
func (s *Store) Deduct(ctx context.Context, itemID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(itemID)
	if i < 0 {
		return false
	}

	if s.items[i].Quantity <= quantity {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity -= quantity
	}
	s.persistLocked(ctx)
	return true
}

// RemoveItem drops a line. Unknown ids leave the cart unchanged.
func (s *Store) RemoveItem(ctx context.Context, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(itemID)
	if i < 0 {
		return false
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.persistLocked(ctx)
	return true
}

// Clear empties the active cart
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked(ctx)
}

// TotalPrice sums the discounted subtotals of all lines
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.items)
}

// TotalItemCount sums the quantities of all lines
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemCount(s.items)
}

// Items returns a copy of the active lines in insertion order
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Owner returns the owner id of the active cart
func (s *Store) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Snapshot returns owner, lines and totals read under one lock
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Owner: s.owner,
		Items: cloneItems(s.items),
		Totals: Totals{
			LineCount:  len(s.items),
			ItemCount:  itemCount(s.items),
			TotalPrice: totalPrice(s.items),
		},
	}
}

// Reconcile resolves the current owner and loads its cart. For a signed-in
// owner the guest cart is merged into the user cart, the result is written
// to the user partition and the guest partition is removed. Running it
// twice without a token change leaves the cart as it is.
func (s *Store) Reconcile(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reconciling = true
	defer func() { s.reconciling = false }()

	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read token set, reconciling as guest")
		tokens = nil
	}

	owner, mode := session.DecodeOwnerID(tokens)
	if mode.Degraded() {
		s.logger.WithField("mode", mode.String()).
			Warn("Access token carries no user id, using the raw token as cart owner")
	}

	if owner != s.owner {
		s.logger.WithFields(logrus.Fields{
			"from": s.owner,
			"to":   owner,
			"mode": mode.String(),
		}).Info("Cart owner changed")
		s.owner = owner
		s.loaded = false
	}

	guestItems, guestOK := s.readLocked(ctx, session.PartitionKey(session.GuestOwner))

	if owner == session.GuestOwner {
		s.items = guestItems
		s.loaded = guestOK
		s.metrics.CartReconciled("guest")
		return
	}

	userKey := session.PartitionKey(owner)
	userItems, userOK := s.readLocked(ctx, userKey)
	s.items = mergeItems(userItems, guestItems, s.newID)
	s.metrics.CartReconciled("merge")

	if !guestOK || !userOK {
		// a partition could not be read; writing now could clobber it
		s.loaded = false
		return
	}

	if err := s.writeLocked(ctx, userKey, s.items); err != nil {
		s.logger.WithError(err).WithField("owner", owner).Error("Failed to persist merged cart")
		s.loaded = false
		return
	}
	if err := s.kv.Remove(ctx, session.PartitionKey(session.GuestOwner)); err != nil {
		s.logger.WithError(err).Warn("Failed to remove guest cart after merge")
	}

	s.loaded = true
}

func (s *Store) indexLocked(itemID string) int {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// persistLocked writes the active cart to the owner's partition
func (s *Store) persistLocked(ctx context.Context) {
	if s.reconciling {
		return
	}

	key := session.PartitionKey(s.owner)

	if len(s.items) == 0 && !s.loaded {
		stored, ok := s.readLocked(ctx, key)
		if !ok || len(stored) > 0 {
			s.metrics.CartPersistSkipped()
			s.logger.WithField("owner", s.owner).Debug("Skipping empty cart write before the stored cart was loaded")
			return
		}
	}

	if err := s.writeLocked(ctx, key, s.items); err != nil {
		s.logger.WithError(err).WithField("owner", s.owner).Error("Failed to persist cart")
	}
}

// readLocked loads a partition. ok is false only when storage failed; a
// missing or corrupted partition is an empty cart.
func (s *Store) readLocked(ctx context.Context, key string) ([]LineItem, bool) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to read cart partition")
		return nil, false
	}
	if !found || raw == "" {
		return nil, true
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Stored cart is corrupted, starting empty")
		return nil, true
	}

	return s.sanitize(items), true
}

func (s *Store) writeLocked(ctx context.Context, key string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(data))
}

// sanitize drops non-positive lines and fills in missing or duplicate ids
func (s *Store) sanitize(items []LineItem) []LineItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if _, dup := seen[item.ID]; item.ID == "" || dup {
			item.ID = s.newID()
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// mergeItems adds guest lines to base. Lines with the same product and
// variant sum their quantities; new guest lines keep their id unless it is
// already taken.
func mergeItems(base, guest []LineItem, newID func() string) []LineItem {
	merged := cloneItems(base)

	ids := make(map[string]struct{}, len(merged)+len(guest))
	for _, item := range merged {
		ids[item.ID] = struct{}{}
	}

outer:
	for _, g := range guest {
		for i := range merged {
			if merged[i].key() == g.key() {
				merged[i].Quantity += g.Quantity
				continue outer
			}
		}
		if _, taken := ids[g.ID]; taken {
			g.ID = newID()
		}
		ids[g.ID] = struct{}{}
		merged = append(merged, g)
	}

	return merged
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func totalPrice(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func itemCount(items []LineItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxLineQuantity bounds the quantity of a single cart line.
const MaxLineQuantity = 999

var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = errors.New("session update conflict")
)

// CartLine is a priced snapshot of a product taken when it was first added.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

type Session struct {
	ID        string     `json:"id"`
	UserID    uint       `json:"user_id"`
	Username  string     `json:"username"`
	IsAdmin   bool       `json:"is_admin"`
	Cart      []CartLine `json:"cart"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Store persists sessions keyed by id. Get and Update report ErrNotFound
// for missing and expired sessions; Delete is idempotent.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func New(userID uint, username string, isAdmin bool, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		IsAdmin:   isAdmin,
		Cart:      []CartLine{},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) Clone() *Session {
	out := *s
	out.Cart = make([]CartLine, len(s.Cart))
	copy(out.Cart, s.Cart)
	return &out
}

// AddLine merges line into the cart: an existing line for the same product
// has its quantity increased, otherwise line is appended. Quantities stay
// within 1..MaxLineQuantity.
func (s *Session) AddLine(line CartLine) {
	line.Quantity = clampQuantity(line.Quantity)
	for i := range s.Cart {
		if s.Cart[i].ProductID == line.ProductID {
			s.Cart[i].Quantity = clampQuantity(s.Cart[i].Quantity + line.Quantity)
			return
		}
	}
	s.Cart = append(s.Cart, line)
}

func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxLineQuantity:
		return MaxLineQuantity
	}
	return q
}

func (s *Session) Total() float64 {
	var total float64
	for _, l := range s.Cart {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
)

type CartService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	Events   Publisher
}

type CartView struct {
	Lines []session.CartLine `json:"lines"`
	Total float64            `json:"total"`
}

// ParseQuantity reads a requested quantity. Anything that is not a positive
// integer counts as 1, and large values are capped at
// session.MaxLineQuantity.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return session.MaxLineQuantity
	}
	if err != nil || n < 1 {
		return 1
	}
	if n > session.MaxLineQuantity {
		return session.MaxLineQuantity
	}
	return int(n)
}

// AddItem merges productID into the session cart and returns the updated
// session. The product's name, price and image are copied at this moment.
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, productID uint, rawQuantity string) (*session.Session, error) {
	if sess == nil {
		return nil, ErrNotAuthenticated
	}
	qty := ParseQuantity(rawQuantity)

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	updated, err := s.Sessions.Update(ctx, sess.ID, func(cur *session.Session) error {
		cur.AddLine(session.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  qty,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("update session: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, strconv.FormatUint(uint64(sess.UserID), 10), map[string]any{
		"type":      "cart_item_added",
		"userID":    sess.UserID,
		"productID": product.ID,
		"quantity":  qty,
	})
	return updated, nil
}

// ViewCart totals the lines of sess on every call.
func (s *CartService) ViewCart(ctx context.Context, sess *session.Session) (*CartView, error) {
	if sess == nil {
		return nil, ErrNotAuthenticated
	}
	lines := make([]session.CartLine, len(sess.Cart))
	copy(lines, sess.Cart)
	return &CartView{Lines: lines, Total: sess.Total()}, nil
}
